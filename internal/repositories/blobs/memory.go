package blobs

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gmfgallery/internal/dataurlx"
)

type memoryBlob struct {
	data        []byte
	contentType string
}

// MemoryRepository keeps blobs in process memory; URLs use the memory:// scheme.
type MemoryRepository struct {
	mu    sync.RWMutex
	blobs map[string]memoryBlob
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{blobs: make(map[string]memoryBlob)}
}

func (r *MemoryRepository) Put(ctx context.Context, path string, dataURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, contentType, err := dataurlx.Decode(dataURL)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.blobs[path] = memoryBlob{data: data, contentType: contentType}
	r.mu.Unlock()

	return "memory://" + escapeKey(path), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.blobs, path)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	_, ok := r.blobs[path]
	r.mu.RUnlock()
	return ok, nil
}

// Content returns the stored bytes and content type of path.
func (r *MemoryRepository) Content(path string) ([]byte, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.blobs[path]
	return b.data, b.contentType, ok
}
