// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go translation of
// the SQLite sources — it works everywhere Go works, including in tests
// with ":memory:" databases.
//
// SCHEMA LIFECYCLE:
// Opening a database does NOT create the schema. Schema creation and seed
// data are the Bootstrap procedure's job (bootstrap.go), which runs once at
// deployment time (cmd/initdb) and is a cheap no-op on every later start.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	// Side-effect import: the driver registers itself with database/sql
	// under the name "sqlite".
	_ "modernc.org/sqlite"

	"github.com/muaz-405/DevQuest/internal/apperror"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
type DB struct {
	conn *sql.DB
}

// New opens a SQLite database and verifies the connection.
//
// dsn examples:
//   - "data/devquest.db" → file-based database (persistent)
//   - ":memory:"         → in-memory database (tests; lost on close)
//
// sql.Open only creates the pool manager; Ping forces a real connection so
// a bad path or permission problem surfaces here, not on the first query.
func New(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, apperror.Configuration("database connection string is required")
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// One connection, shared by the whole pool. SQLite allows a single
	// writer anyway, the PRAGMAs below are per-connection, and with
	// ":memory:" every new pool connection would otherwise see its own
	// empty database.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode lets reads proceed while a write is in flight — important
	// for a web server where requests overlap.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite for backwards compatibility.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection pool. Always defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure (duplicate email, duplicate category/badge name).
//
// The pure-Go driver exposes this only through the error text; matching the
// constant prefix SQLite itself emits is the accepted idiom.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
