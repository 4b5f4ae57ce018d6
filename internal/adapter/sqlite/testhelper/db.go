// Package testhelper provides a migrated throwaway SQLite store and seed
// helpers for repository and pipeline tests.
package testhelper

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/heartmarshall/booktrans/internal/adapter/sqlite"
	"github.com/heartmarshall/booktrans/internal/config"
)

// SetupTestDB opens a fresh SQLite store in the test's temp directory and
// applies the embedded migrations. The connection is closed via t.Cleanup;
// the file is removed with the temp dir.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	path := filepath.Join(t.TempDir(), "test.db")

	db, err := sqlite.Open(ctx, config.DatabaseConfig{Path: path})
	if err != nil {
		t.Fatalf("testhelper: failed to setup test DB: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
