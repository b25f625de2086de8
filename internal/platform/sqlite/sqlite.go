// Package sqlite owns the catalogue's storage file: opening the
// database with the right pragmas and creating the schema.
package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DatabaseFile is the name of the store inside the storage directory.
const DatabaseFile = "books.db"

// Open opens (creating the directory if needed) the database at
// dir/books.db with foreign keys enforced.
func Open(dir string) (*sql.DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure storage dir: %w", err)
	}

	// The pragma goes in the DSN so every connection the pool opens
	// enforces foreign keys, not just the first one.
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", filepath.Join(dir, DatabaseFile))
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// Migrate applies the embedded schema migrations. All DDL is
// IF NOT EXISTS, so running it against a store created by an earlier
// install is a no-op for the existing tables.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
