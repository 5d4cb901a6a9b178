// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests. All test setup functions use db.GetSchemaSQL() so tests run
// against the authoritative schema, preventing drift between test and
// production. Do not hardcode CREATE TABLE statements in test files.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/sendgate/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedCreator inserts a test creator and returns its ID.
func seedCreator(t *testing.T, db *sql.DB, id, pageType string) string {
	t.Helper()
	if id == "" {
		id = "creator-001"
	}
	if pageType == "" {
		pageType = "paid"
	}
	_, err := db.Exec("INSERT INTO creators (id, display_name, page_type) VALUES (?, ?, ?)", id, "Test Creator", pageType)
	if err != nil {
		t.Fatalf("failed to seed creator: %v", err)
	}
	return id
}

// countTriggers returns the number of volume_triggers rows for a creator.
func countTriggers(t *testing.T, db *sql.DB, creatorID string) int {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM volume_triggers WHERE creator_id = ?", creatorID).Scan(&count)
	if err != nil {
		t.Fatalf("failed to count triggers: %v", err)
	}
	return count
}
