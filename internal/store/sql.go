package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lutfiEmre/todolist/internal/db"
	"github.com/lutfiEmre/todolist/internal/db/dialect"
)

const collectionsTable = "collections"

// SQLStore keeps each resource document as one row of the collections table.
// It works with both the SQLite and the Postgres pools.
type SQLStore struct {
	pool      *db.Pool
	upsertSQL string
}

// NewSQLStore creates the collections table if needed.
func NewSQLStore(ctx context.Context, pool *db.Pool) (*SQLStore, error) {
	driver := pool.DriverName()
	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		resource TEXT PRIMARY KEY,
		document TEXT NOT NULL,
		updated_at %s NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`, collectionsTable, dialect.TimestampType(driver))
	if _, err := pool.Writer().ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create %s table: %w", collectionsTable, err)
	}

	upsert := dialect.Upsert(collectionsTable, "resource", []string{"document"},
		"updated_at = "+dialect.Now(driver))
	return &SQLStore{
		pool:      pool,
		upsertSQL: pool.Writer().Rebind(upsert),
	}, nil
}

func (s *SQLStore) Read(ctx context.Context, resource string) ([]byte, error) {
	reader := s.pool.Reader()
	var doc string
	err := reader.GetContext(ctx, &doc,
		reader.Rebind(`SELECT document FROM `+collectionsTable+` WHERE resource = ?`), resource)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

func (s *SQLStore) Write(ctx context.Context, resource string, doc []byte) error {
	_, err := s.pool.Writer().ExecContext(ctx, s.upsertSQL, resource, string(doc))
	return err
}

func (s *SQLStore) Close() error {
	return s.pool.Close()
}
