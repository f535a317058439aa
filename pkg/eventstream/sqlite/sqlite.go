// Package sqlite records stream events in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	_ "github.com/mattn/go-sqlite3"

	"github.com/papercomputeco/ores/pkg/eventstream/sqlrecorder"
)

// Publisher is a sqlrecorder.Publisher backed by github.com/mattn/go-sqlite3.
type Publisher struct {
	*sqlrecorder.Publisher
}

// NewPublisher opens dbPath, creating its parent directory when needed.
// dbPath can also be ":memory:".
func NewPublisher(ctx context.Context, dbPath string) (*Publisher, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection serializes writes from the dispatch workers and
	// keeps an in-memory database alive across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// ent's SQLite migrator refuses to run with foreign keys disabled.
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	rec, err := sqlrecorder.New(ctx, db, dialect.SQLite)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Publisher{Publisher: rec}, nil
}
