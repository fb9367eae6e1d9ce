package images

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gmfgallery/internal/dbx"
	"github.com/dmitrijs2005/gmfgallery/internal/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert adds a record and returns the id generated by the database.
// StoragePath is stored as NULL when empty.
func (r *PostgresRepository) Insert(ctx context.Context, image *models.GalleryImage) (string, error) {
	query := `
		INSERT INTO gallery (url, description, date, storage_path)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id string
	err := r.db.QueryRowContext(ctx, query,
		image.URL, image.Description, image.Date.UTC(), nullString(image.StoragePath)).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert image: %w", err)
	}
	return id, nil
}

// ListByDateDesc returns all records ordered by date, newest first.
func (r *PostgresRepository) ListByDateDesc(ctx context.Context) ([]models.GalleryImage, error) {
	query := `SELECT id, url, description, date, storage_path FROM gallery ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select images: %w", err)
	}
	defer rows.Close()

	result := make([]models.GalleryImage, 0)
	for rows.Next() {
		var (
			item        models.GalleryImage
			storagePath sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.URL, &item.Description, &item.Date, &storagePath); err != nil {
			return nil, fmt.Errorf("failed to scan image row: %w", err)
		}
		item.StoragePath = storagePath.String
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate image rows: %w", err)
	}
	return result, nil
}

// Delete removes the record with the given id. Zero affected rows is not an
// error: the record is already gone.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gallery WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	n, err := dbx.RowsAffected(res)
	if err != nil {
		return err
	}
	if n > 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
