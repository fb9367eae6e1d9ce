package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	pgmigrations "github.com/dmitrijs2005/gmfgallery/internal/migrations/postgres"
	"github.com/dmitrijs2005/gmfgallery/internal/repositories/images"
)

var (
	// sqlOpen and gooseUpContext are seams for tests.
	sqlOpen        = sql.Open
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.UpContext(ctx, db, dir, opts...)
	}
)

// RunPostgresMigrations applies the embedded metadata store migrations.
func RunPostgresMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(pgmigrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// OpenPostgres connects through the pgx stdlib driver, checks the connection
// and migrates the schema.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := RunPostgresMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return db, nil
}

func newPostgresImages(ctx context.Context, dsn string) (images.Repository, *sql.DB, error) {
	db, err := OpenPostgres(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	return images.NewPostgresRepository(db), db, nil
}
