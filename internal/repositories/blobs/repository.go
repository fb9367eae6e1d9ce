// Package blobs is the path-addressed store for uploaded image bytes.
package blobs

import "context"

// Repository writes, deletes and probes blobs by path.
//
// Put accepts the image as a data URL, stores the decoded bytes under path and
// returns a URL the gallery can display directly.
type Repository interface {
	Put(ctx context.Context, path string, dataURL string) (string, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}
