package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestDBTX_SatisfiedByDBAndTx(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var _ DBTX = db

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	var _ DBTX = tx
}

func TestRowsAffected(t *testing.T) {
	n, err := RowsAffected(sqlmock.NewResult(0, 3))
	require.NoError(t, err)
	require.Equal(t, int64(3), n)

	_, err = RowsAffected(sqlmock.NewErrorResult(errors.New("rows-err")))
	require.ErrorContains(t, err, "rows affected error: rows-err")
}
