package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens (creating if necessary) the sqlite database at databasePath.
// The pragmas ride in the DSN because foreign_keys is per-connection state:
// the pool opens fresh connections under load, and every one of them must
// enforce the cascade rules between formulas, templates and diet records.
func Open(databasePath string) (*sql.DB, error) {
	inMemory := databasePath == ":memory:"
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(databasePath), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	dsn := databasePath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if inMemory {
		// Each in-memory connection is its own empty database; keep the
		// pool at one connection so the data survives.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}
