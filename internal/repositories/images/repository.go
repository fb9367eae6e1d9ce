// Package images is the metadata store of gallery records.
package images

import (
	"context"

	"github.com/dmitrijs2005/gmfgallery/internal/models"
)

// Repository stores gallery records. Insert assigns the record ID and returns
// it; ListByDateDesc returns every record, newest first; Delete by an unknown
// ID is a no-op.
type Repository interface {
	Insert(ctx context.Context, image *models.GalleryImage) (string, error)
	ListByDateDesc(ctx context.Context) ([]models.GalleryImage, error)
	Delete(ctx context.Context, id string) error
}
