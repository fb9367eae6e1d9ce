package images

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gmfgallery/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertQuery = `(?s)^\s*INSERT\s+INTO\s+gallery\s*\(url,\s*description,\s*date,\s*storage_path\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id\s*$`
	selectQuery = `(?s)^SELECT\s+id,\s*url,\s*description,\s*date,\s*storage_path\s+FROM\s+gallery\s+ORDER\s+BY\s+date\s+DESC$`
	deleteQuery = `^DELETE\s+FROM\s+gallery\s+WHERE\s+id\s*=\s*\$1$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestInsert_WithStoragePath(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	date := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(insertQuery).
		WithArgs("https://blobs/gallery/1_a.png", "Gold H4", date, "gallery/1_a.png").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("9b2f5c1e-0000-4000-8000-000000000001"))

	id, err := repo.Insert(context.Background(), &models.GalleryImage{
		URL:         "https://blobs/gallery/1_a.png",
		Description: "Gold H4",
		Date:        date,
		StoragePath: "gallery/1_a.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "9b2f5c1e-0000-4000-8000-000000000001", id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_WithoutStoragePathBindsNull(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	date := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(insertQuery).
		WithArgs("https://x/y.png", "B", date, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("id-2"))

	id, err := repo.Insert(context.Background(), &models.GalleryImage{
		URL:         "https://x/y.png",
		Description: "B",
		Date:        date,
	})
	require.NoError(t, err)
	assert.Equal(t, "id-2", id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).WillReturnError(errors.New("permission denied"))

	_, err := repo.Insert(context.Background(), &models.GalleryImage{URL: "u", Description: "d", Date: time.Now()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert image: permission denied")
}

func TestListByDateDesc_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	newer := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "url", "description", "date", "storage_path"}).
		AddRow("a", "https://blobs/gallery/2_b.png", "Gold H4", newer, "gallery/2_b.png").
		AddRow("b", "https://x/y.png", "B", older, nil)
	mock.ExpectQuery(selectQuery).WillReturnRows(rows)

	got, err := repo.ListByDateDesc(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, models.GalleryImage{
		ID: "a", URL: "https://blobs/gallery/2_b.png", Description: "Gold H4", Date: newer, StoragePath: "gallery/2_b.png",
	}, got[0])
	assert.Equal(t, "b", got[1].ID)
	assert.Empty(t, got[1].StoragePath)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByDateDesc_EmptyIsNonNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id", "url", "description", "date", "storage_path"}))

	got, err := repo.ListByDateDesc(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByDateDesc_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).WillReturnError(errors.New("conn refused"))

	_, err := repo.ListByDateDesc(context.Background())
	require.ErrorContains(t, err, "failed to select images: conn refused")
}

func TestListByDateDesc_ScanError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "url", "description", "date", "storage_path"}).
		AddRow("a", "u", "d", "not-a-time", nil)
	mock.ExpectQuery(selectQuery).WillReturnRows(rows)

	_, err := repo.ListByDateDesc(context.Background())
	require.ErrorContains(t, err, "failed to scan image row")
}

func TestListByDateDesc_RowError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "url", "description", "date", "storage_path"}).
		AddRow("a", "u", "d", time.Now(), nil).
		RowError(0, errors.New("row boom"))
	mock.ExpectQuery(selectQuery).WillReturnRows(rows)

	_, err := repo.ListByDateDesc(context.Background())
	require.ErrorContains(t, err, "failed to iterate image rows: row boom")
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m sqlmock.Sqlmock)
		wantErr string
	}{
		{
			name: "one row",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(deleteQuery).WithArgs("a").WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "already gone",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(deleteQuery).WithArgs("a").WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "exec error",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(deleteQuery).WithArgs("a").WillReturnError(errors.New("db down"))
			},
			wantErr: "failed to delete image: db down",
		},
		{
			name: "rows affected error",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(deleteQuery).WithArgs("a").WillReturnResult(sqlmock.NewErrorResult(errors.New("rows-err")))
			},
			wantErr: "rows affected error: rows-err",
		},
		{
			name: "too many rows",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectExec(deleteQuery).WithArgs("a").WillReturnResult(sqlmock.NewResult(0, 2))
			},
			wantErr: "unexpected rows affected: 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			tt.setup(mock)

			err := repo.Delete(context.Background(), "a")
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.ErrorContains(t, err, tt.wantErr)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
