// Package repomanager selects and opens the storage backends named in the
// configuration: the image metadata store, the blob store and the local
// state that backs the admin session.
package repomanager

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gmfgallery/internal/common"
	"github.com/dmitrijs2005/gmfgallery/internal/config"
	"github.com/dmitrijs2005/gmfgallery/internal/logging"
	"github.com/dmitrijs2005/gmfgallery/internal/repositories/blobs"
	"github.com/dmitrijs2005/gmfgallery/internal/repositories/images"
	"github.com/dmitrijs2005/gmfgallery/internal/repositories/localstate"
)

var (
	openPostgresImages = newPostgresImages
	openS3Blobs        = func(ctx context.Context, cfg *config.Config) (blobs.Repository, error) {
		return blobs.NewS3Repository(ctx, cfg)
	}
)

// Repositories bundles the opened backends. Close releases the database
// handles it owns.
type Repositories struct {
	Images     images.Repository
	Blobs      blobs.Repository
	LocalState localstate.Repository

	closers []io.Closer
}

// Open builds every backend from cfg. On failure everything opened so far
// is closed again.
func Open(ctx context.Context, cfg *config.Config, log logging.Logger) (_ *Repositories, err error) {
	r := &Repositories{}
	defer func() {
		if err != nil {
			_ = r.Close()
		}
	}()

	switch cfg.MetadataBackend {
	case config.BackendPostgres:
		repo, db, err := openPostgresImages(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		r.Images = repo
		r.closers = append(r.closers, db)
	case config.BackendMemory:
		r.Images = images.NewMemoryRepository()
	default:
		return nil, fmt.Errorf("metadata backend %q: %w", cfg.MetadataBackend, common.ErrUnknownBackend)
	}

	switch cfg.BlobBackend {
	case config.BackendS3:
		repo, err := openS3Blobs(ctx, cfg)
		if err != nil {
			return nil, err
		}
		r.Blobs = repo
	case config.BackendMemory:
		r.Blobs = blobs.NewMemoryRepository()
	default:
		return nil, fmt.Errorf("blob backend %q: %w", cfg.BlobBackend, common.ErrUnknownBackend)
	}

	switch cfg.LocalStateBackend {
	case config.BackendSQLite:
		db, err := OpenSQLite(ctx, cfg.LocalStatePath)
		if err != nil {
			return nil, err
		}
		r.LocalState = localstate.NewSQLiteRepository(db)
		r.closers = append(r.closers, db)
	case config.BackendKeyring:
		r.LocalState = localstate.NewKeyringRepository(cfg.KeyringService)
	default:
		return nil, fmt.Errorf("local state backend %q: %w", cfg.LocalStateBackend, common.ErrUnknownBackend)
	}

	log.Info(ctx, "storage backends ready",
		"metadata", cfg.MetadataBackend,
		"blobs", cfg.BlobBackend,
		"local_state", cfg.LocalStateBackend)

	return r, nil
}

func (r *Repositories) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}
