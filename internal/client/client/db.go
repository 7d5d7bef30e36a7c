// Package client wires the local SQLite database: it opens the file,
// applies the embedded migrations and builds the repositories on top of it.
package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/vaultkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/vaultkeeper/internal/client/repositories/entries"
	"github.com/dmitrijs2005/vaultkeeper/internal/client/repositories/metadata"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	DB       *sql.DB
	Metadata *metadata.SQLiteRepository
	Entry    *entries.SQLiteRepository
}

// Close releases the underlying database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite database at dsn, migrates it and returns the
// repositories bound to it. A single connection is used so that in-memory
// databases behave like files.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dsn, err)
	}

	repos := &Repositories{
		DB:       db,
		Metadata: metadata.NewSQLiteRepository(db),
		Entry:    entries.NewSQLiteRepository(db),
	}
	return repos, nil
}
