package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/booktrans/internal/adapter/sqlite"
	"github.com/heartmarshall/booktrans/internal/config"
)

func TestOpen_CreatesAndMigrates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "book.db")

	db, err := sqlite.Open(ctx, config.DatabaseConfig{Path: path})
	require.NoError(t, err)
	defer db.Close()

	// All four tables exist after migration.
	for _, table := range []string{"chapters", "sections", "paragraphs", "translations"} {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}

	// Foreign keys are enforced via the DSN pragma.
	var fk int
	require.NoError(t, db.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
	require.Equal(t, 1, fk)
}

func TestOpen_Reopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "book.db")

	db, err := sqlite.Open(ctx, config.DatabaseConfig{Path: path})
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO chapters (title, position) VALUES ('a', 1)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening applies no further migrations and keeps the data.
	db, err = sqlite.Open(ctx, config.DatabaseConfig{Path: path})
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chapters`).Scan(&n))
	require.Equal(t, 1, n)
}
