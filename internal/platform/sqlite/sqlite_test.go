package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("creates the storage directory and database file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "books")

		db, err := Open(dir)
		require.NoError(t, err)
		defer db.Close()

		_, err = os.Stat(filepath.Join(dir, DatabaseFile))
		assert.NoError(t, err)
	})

	t.Run("enforces foreign keys on every connection", func(t *testing.T) {
		db, err := Open(t.TempDir())
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()

		// Hold two connections at once so the pool has to open a
		// second one, then check the pragma on both.
		first, err := db.Conn(ctx)
		require.NoError(t, err)
		defer first.Close()
		second, err := db.Conn(ctx)
		require.NoError(t, err)
		defer second.Close()

		for _, conn := range []*sql.Conn{first, second} {
			var enabled int
			require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&enabled))
			assert.Equal(t, 1, enabled)
		}
	})
}

func TestMigrate(t *testing.T) {
	t.Run("creates the catalogue tables", func(t *testing.T) {
		db, err := Open(t.TempDir())
		require.NoError(t, err)
		defer db.Close()

		require.NoError(t, Migrate(db))

		for _, table := range []string{"publishers", "authors", "books", "books_authors"} {
			var name string
			err := db.QueryRow(
				`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table,
			).Scan(&name)
			require.NoError(t, err, "table %s should exist", table)
			assert.Equal(t, table, name)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		db, err := Open(t.TempDir())
		require.NoError(t, err)
		defer db.Close()

		require.NoError(t, Migrate(db))
		require.NoError(t, Migrate(db))
	})
}
