package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/gmfgallery/internal/models"
	"github.com/dmitrijs2005/gmfgallery/internal/repositories/localstate"
)

var errBackend = errors.New("backend unavailable")

func newLocalState(t *testing.T) *localstate.SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	return localstate.NewSQLiteRepository(db)
}

// brokenState fails every call.
type brokenState struct{}

func (brokenState) Get(context.Context, string) ([]byte, error) { return nil, errBackend }
func (brokenState) Set(context.Context, string, []byte) error { return errBackend }
func (brokenState) Delete(context.Context, string) error { return errBackend }
func (brokenState) SetIfAbsent(context.Context, string, []byte) (bool, error) {
	return false, errBackend
}

// failingImages wraps an images repository and fails the selected calls.
type failingImages struct {
	insertErr error
	listErr   error
	deleteErr error
	inserted  int
}

func (f *failingImages) Insert(context.Context, *models.GalleryImage) (string, error) {
	f.inserted++
	return "", f.insertErr
}

func (f *failingImages) ListByDateDesc(context.Context) ([]models.GalleryImage, error) {
	return nil, f.listErr
}

func (f *failingImages) Delete(context.Context, string) error {
	return f.deleteErr
}

// failingBlobs fails Put and Delete with the configured errors and records calls.
type failingBlobs struct {
	putErr    error
	deleteErr error
	puts      []string
	deletes   []string
}

func (f *failingBlobs) Put(_ context.Context, path, _ string) (string, error) {
	f.puts = append(f.puts, path)
	if f.putErr != nil {
		return "", f.putErr
	}
	return "memory://" + path, nil
}

func (f *failingBlobs) Delete(_ context.Context, path string) error {
	f.deletes = append(f.deletes, path)
	return f.deleteErr
}

func (f *failingBlobs) Exists(context.Context, string) (bool, error) {
	return false, nil
}
