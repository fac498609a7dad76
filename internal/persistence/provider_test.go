package persistence

import (
	"context"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lutfiEmre/todolist/internal/common/config"
	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/store"
)

func TestProvideDrivers(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	dir := t.TempDir()
	tests := []struct {
		name string
		cfg  config.StorageConfig
		want any
	}{
		{"json", config.StorageConfig{Driver: config.DriverJSON, Dir: dir}, &store.FileStore{}},
		{"memory", config.StorageConfig{Driver: config.DriverMemory}, &store.MemoryStore{}},
		{"sqlite", config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(dir, "board.db")}, &store.SQLStore{}},
		{"redis", config.StorageConfig{Driver: config.DriverRedis, Redis: config.RedisConfig{Addr: mr.Addr(), KeyPrefix: "t:"}}, &store.RedisStore{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, cleanup, err := Provide(context.Background(), tt.cfg, logger.NewNop())
			require.NoError(t, err)
			defer func() { _ = cleanup() }()

			assert.IsType(t, tt.want, s)
			require.NoError(t, s.Write(context.Background(), store.ResourceTasks, []byte(`[]`)))
		})
	}
}

func TestProvideUnknownDriver(t *testing.T) {
	_, _, err := Provide(context.Background(), config.StorageConfig{Driver: "mongo"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage driver")
}

func TestRedisOptionsFromURL(t *testing.T) {
	opts, err := redisOptions(config.RedisConfig{URL: "redis://:secret@cache:6380/2", Addr: "ignored:1"})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)

	_, err = redisOptions(config.RedisConfig{URL: "://bad"})
	assert.Error(t, err)
}
