package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/gmfgallery/internal/filex"
	litemigrations "github.com/dmitrijs2005/gmfgallery/internal/migrations/sqlite"
)

// RunSQLiteMigrations applies the embedded local state migrations.
func RunSQLiteMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(litemigrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// OpenSQLite opens (creating if needed) the local state database at path.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := filex.EnsureParentDir(path); err != nil {
			return nil, fmt.Errorf("local state dir error: %w", err)
		}
	}

	db, err := sqlOpen("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("local state open error: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := RunSQLiteMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("local state migration error: %w", err)
	}

	return db, nil
}
