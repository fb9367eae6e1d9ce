package images

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/gmfgallery/internal/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps records in process memory. Used for local runs
// without a database and in tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.GalleryImage
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.GalleryImage)}
}

func (r *MemoryRepository) Insert(ctx context.Context, image *models.GalleryImage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item := *image
	item.ID = uuid.NewString()
	r.items[item.ID] = item
	return item.ID, nil
}

func (r *MemoryRepository) ListByDateDesc(ctx context.Context) ([]models.GalleryImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	result := make([]models.GalleryImage, 0, len(r.items))
	for _, item := range r.items {
		result = append(result, item)
	}
	r.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].ID > result[j].ID
		}
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}
