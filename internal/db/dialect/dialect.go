// Package dialect provides SQL fragment helpers for SQLite/PostgreSQL portability.
package dialect

import (
	"fmt"
	"strings"
)

const (
	SQLite3 = "sqlite3"
	PGX     = "pgx"
)

// IsPostgres returns true if the driver is PostgreSQL (pgx).
func IsPostgres(driver string) bool {
	return driver == PGX
}

// Now returns the SQL expression for the current timestamp.
//
//	SQLite:   datetime('now')
//	Postgres: NOW()
func Now(driver string) string {
	if IsPostgres(driver) {
		return "NOW()"
	}
	return "datetime('now')"
}

// TimestampType returns the column type used for timestamps.
func TimestampType(driver string) string {
	if IsPostgres(driver) {
		return "TIMESTAMPTZ"
	}
	return "TIMESTAMP"
}

// Upsert builds an INSERT that replaces every non-key column on key conflict.
// Both SQLite (3.24+) and Postgres accept the ON CONFLICT ... DO UPDATE form;
// placeholders are written as '?' and must be rebound by the caller.
// Extra is appended verbatim to the SET list, e.g. "updated_at = NOW()".
func Upsert(table, key string, columns []string, extra ...string) string {
	all := append([]string{key}, columns...)
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(all)), ", ")

	sets := make([]string, 0, len(columns)+len(extra))
	for _, col := range columns {
		sets = append(sets, fmt.Sprintf("%s = excluded.%s", col, col))
	}
	sets = append(sets, extra...)

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(%s) DO UPDATE SET %s",
		table, strings.Join(all, ", "), marks, key, strings.Join(sets, ", "))
}
