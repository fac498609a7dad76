// Package persistence builds the record store selected by configuration.
package persistence

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lutfiEmre/todolist/internal/common/config"
	"github.com/lutfiEmre/todolist/internal/common/logger"
	"github.com/lutfiEmre/todolist/internal/db"
	"github.com/lutfiEmre/todolist/internal/db/dialect"
	"github.com/lutfiEmre/todolist/internal/store"
)

// Provide creates the record store used by the repositories. The returned
// cleanup closes it.
func Provide(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (store.Store, func() error, error) {
	s, err := open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if log != nil {
		log.Info("Record store initialized", zap.String("driver", cfg.Driver), zap.String("target", describe(cfg)))
	}
	return s, s.Close, nil
}

func open(ctx context.Context, cfg config.StorageConfig) (store.Store, error) {
	switch cfg.Driver {
	case "", config.DriverJSON:
		return store.NewFileStore(cfg.Dir), nil

	case config.DriverMemory:
		return store.NewMemoryStore(), nil

	case config.DriverSQLite:
		pool, err := db.OpenSQLitePool(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return newSQLStore(ctx, pool)

	case config.DriverPostgres:
		conn, err := db.OpenPostgres(ctx, cfg.Postgres.DSN(), cfg.Postgres.MaxConns, cfg.Postgres.MinConns)
		if err != nil {
			return nil, err
		}
		x := sqlx.NewDb(conn, dialect.PGX)
		return newSQLStore(ctx, db.NewPool(x, x))

	case config.DriverRedis:
		opts, err := redisOptions(cfg.Redis)
		if err != nil {
			return nil, err
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return store.NewRedisStore(client, cfg.Redis.KeyPrefix), nil

	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

func newSQLStore(ctx context.Context, pool *db.Pool) (store.Store, error) {
	s, err := store.NewSQLStore(ctx, pool)
	if err != nil {
		_ = pool.Close()
		return nil, err
	}
	return s, nil
}

func redisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}, nil
}

func describe(cfg config.StorageConfig) string {
	switch cfg.Driver {
	case config.DriverSQLite:
		return cfg.SQLitePath
	case config.DriverPostgres:
		return fmt.Sprintf("%s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	case config.DriverRedis:
		if cfg.Redis.URL != "" {
			return "redis url"
		}
		return cfg.Redis.Addr
	case config.DriverMemory:
		return "memory"
	default:
		return cfg.Dir
	}
}
