// Package store holds the record store: a durable mapping from a resource
// name to one JSON array document, read and replaced as a whole.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/lutfiEmre/todolist/internal/common/logger"
)

// Resource names.
const (
	ResourceTasks    = "tasks"
	ResourceComments = "comments"
)

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("store is closed")

// Store reads and replaces whole resource documents.
//
// Read returns nil with no error when the resource has never been written.
type Store interface {
	Read(ctx context.Context, resource string) ([]byte, error)
	Write(ctx context.Context, resource string, doc []byte) error
	Close() error
}

var codec = sonic.ConfigStd

// Collection is a typed view over one resource of a Store.
type Collection[T any] struct {
	store    Store
	resource string
	logger   *logger.Logger
}

// NewCollection binds resource of s to element type T.
func NewCollection[T any](s Store, resource string, log *logger.Logger) *Collection[T] {
	return &Collection[T]{
		store:    s,
		resource: resource,
		logger:   log.WithFields(zap.String("component", "collection"), zap.String("resource", resource)),
	}
}

// Resource returns the resource name.
func (c *Collection[T]) Resource() string {
	return c.resource
}

// Load returns every record of the resource. Any failure to read or decode
// the document degrades to an empty collection.
func (c *Collection[T]) Load(ctx context.Context) []T {
	doc, err := c.store.Read(ctx, c.resource)
	if err != nil {
		c.logger.Warn("read failed, using empty collection", zap.Error(err))
		return []T{}
	}
	items, err := decode[T](doc)
	if err != nil {
		c.logger.Warn("document is corrupt, using empty collection", zap.Error(err), zap.Int("bytes", len(doc)))
		return []T{}
	}
	return items
}

// Save replaces the resource with items.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	doc, err := encode(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.resource, err)
	}
	if err := c.store.Write(ctx, c.resource, doc); err != nil {
		return fmt.Errorf("write %s: %w", c.resource, err)
	}
	return nil
}

func decode[T any](doc []byte) ([]T, error) {
	if len(bytes.TrimSpace(doc)) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := codec.Unmarshal(doc, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func encode[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return codec.MarshalIndent(items, "", "  ")
}
