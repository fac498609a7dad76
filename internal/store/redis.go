package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each resource document under one string key.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps client. Keys are prefix + resource.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Key returns the redis key holding resource.
func (s *RedisStore) Key(resource string) string {
	return s.prefix + resource
}

func (s *RedisStore) Read(ctx context.Context, resource string) ([]byte, error) {
	doc, err := s.client.Get(ctx, s.Key(resource)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return doc, err
}

// Write replaces the document; a single SET is atomic on the server.
func (s *RedisStore) Write(ctx context.Context, resource string, doc []byte) error {
	return s.client.Set(ctx, s.Key(resource), doc, 0).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
