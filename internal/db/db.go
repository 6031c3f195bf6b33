// Package db opens the process-private SQLite database backing the sqlite
// jio repository.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// MemoryDSN names a private in-memory database. Nothing touches disk, so all
// state disappears with the process.
const MemoryDSN = "file:jiobot?mode=memory"

// Open returns a connection to a fresh in-memory database with the schema applied.
// The pool is pinned to a single connection: every new connection to an
// in-memory DSN would see an empty database.
func Open() (*sql.DB, error) {
	database, err := sql.Open("sqlite3", MemoryDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	database.SetMaxOpenConns(1)
	database.SetMaxIdleConns(1)
	database.SetConnMaxLifetime(0)

	// Enable foreign keys
	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := InitSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}
