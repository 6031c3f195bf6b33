// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for tests.
// setupTestDB goes through db.Open so tests run against the same schema and
// connection settings as the running bot.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/example/jiobot/internal/db"
	"github.com/example/jiobot/internal/ports/secondary"
)

// setupTestDB creates a private in-memory database with the schema applied.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := db.Open()
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedJio creates a jio through the repository and returns its ID.
func seedJio(t *testing.T, repo secondary.JioRepository, name string, creatorID int64, creatorName string) int64 {
	t.Helper()
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	err = repo.Create(ctx, &secondary.JioRecord{
		ID:           id,
		Name:         name,
		CreatorID:    creatorID,
		CreatorName:  creatorName,
		CreatedAt:    time.Date(2024, 5, 1, 22, 30, 0, 0, time.UTC),
		Participants: []string{creatorName},
	})
	if err != nil {
		t.Fatalf("failed to seed jio: %v", err)
	}
	return id
}
