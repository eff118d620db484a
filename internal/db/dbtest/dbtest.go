// Package dbtest opens migrated throwaway SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalgraph/internal/db"
)

// New returns a freshly migrated database in t's temp dir. It is closed
// when the test finishes.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Init("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})

	err = db.RunMigrations(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return database
}

// Count returns the number of rows in table.
func Count(t testing.TB, database *sqlx.DB, table string) int {
	t.Helper()

	var n int
	err := database.Get(&n, "SELECT COUNT(*) FROM "+table)
	if err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
