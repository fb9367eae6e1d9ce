package blobs

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gmfgallery/internal/dataurlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_PutExistsDelete(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	url, err := r.Put(ctx, "gallery/1_a.png", dataurlx.Encode("image/png", []byte("png-bytes")))
	require.NoError(t, err)
	assert.Equal(t, "memory://gallery/1_a.png", url)

	ok, err := r.Exists(ctx, "gallery/1_a.png")
	require.NoError(t, err)
	assert.True(t, ok)

	data, contentType, ok := r.Content("gallery/1_a.png")
	require.True(t, ok)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "image/png", contentType)

	require.NoError(t, r.Delete(ctx, "gallery/1_a.png"))
	ok, err = r.Exists(ctx, "gallery/1_a.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_PutRejectsNonDataURL(t *testing.T) {
	r := NewMemoryRepository()

	_, err := r.Put(context.Background(), "p", "not a data url")
	require.ErrorIs(t, err, dataurlx.ErrNotDataURL)

	ok, err := r.Exists(context.Background(), "p")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_CanceledContext(t *testing.T) {
	r := NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Put(ctx, "p", dataurlx.Encode("image/png", []byte("x")))
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, r.Delete(ctx, "p"), context.Canceled)
	_, err = r.Exists(ctx, "p")
	assert.ErrorIs(t, err, context.Canceled)
}
