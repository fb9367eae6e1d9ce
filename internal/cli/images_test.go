package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gmfgallery/internal/common"
	"github.com/dmitrijs2005/gmfgallery/internal/logging"
	"github.com/dmitrijs2005/gmfgallery/internal/models"
	"github.com/dmitrijs2005/gmfgallery/internal/services"
)

type fakeGallery struct {
	list      []models.GalleryImage
	listErr   error
	addErr    error
	deleteRes services.DeleteResult
	deleteErr error
}

func (f *fakeGallery) ListImages(context.Context) ([]models.GalleryImage, error) {
	return f.list, f.listErr
}

func (f *fakeGallery) ListImagesOrEmpty(context.Context) []models.GalleryImage {
	if f.listErr != nil {
		return []models.GalleryImage{}
	}
	return f.list
}

func (f *fakeGallery) FindImage(_ context.Context, id string) (*models.GalleryImage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	for i := range f.list {
		if f.list[i].ID == id {
			return &f.list[i], nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeGallery) AddImage(context.Context, models.ImagePayload, string) (*models.GalleryImage, error) {
	return nil, f.addErr
}

func (f *fakeGallery) DeleteImageDetailed(context.Context, models.GalleryImage) (services.DeleteResult, error) {
	return f.deleteRes, f.deleteErr
}

func newFakeApp(t *testing.T, g *fakeGallery, input string) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return newApp(testConfig(t), logging.NewDiscard(), nil, g, strings.NewReader(input), out), out
}

func TestList_FailOpenAndStrict(t *testing.T) {
	g := &fakeGallery{listErr: errors.New("firestore unavailable")}

	a, out := newFakeApp(t, g, "")
	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), "No images yet")

	a.config.StrictListing = true
	require.ErrorContains(t, a.List(context.Background()), "firestore unavailable")
}

func TestList_Table(t *testing.T) {
	g := &fakeGallery{list: []models.GalleryImage{
		{ID: "b", URL: "https://x/" + strings.Repeat("a", 80), Description: "Gold H4", Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "a", URL: "https://x/1.png", Description: "EURUSD", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}}

	a, out := newFakeApp(t, g, "")
	require.NoError(t, a.List(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "2024-03-02T00:00:00.000Z")
	assert.Contains(t, lines[1], "...")
	assert.Contains(t, lines[2], "EURUSD")
}

func TestAdd_ReportsOrphanedBlob(t *testing.T) {
	g := &fakeGallery{addErr: &services.AddImageError{
		Stage:        services.StageMetadata,
		StoragePath:  "gallery/1_a.png",
		OrphanedBlob: true,
		Err:          errors.New("quota"),
	}}
	a, out := newFakeApp(t, g, "https://x/y.png\nd\n")

	err := a.Add(context.Background())
	require.Error(t, err)
	assert.Contains(t, out.String(), "gallery/1_a.png is not referenced by any image")
}

func TestDelete_ReportsOrphanedBlob(t *testing.T) {
	g := &fakeGallery{
		list:      []models.GalleryImage{{ID: "1", StoragePath: "gallery/1_a.png"}},
		deleteRes: services.DeleteResult{MetadataDeleted: true, OrphanedBlobPath: "gallery/1_a.png"},
		deleteErr: errors.New("access denied"),
	}
	a, out := newFakeApp(t, g, "yes\n")

	require.NoError(t, a.Delete(context.Background(), "1"))
	assert.Contains(t, out.String(), "its file gallery/1_a.png could not be deleted")
}

func TestDelete_MetadataFailure(t *testing.T) {
	g := &fakeGallery{
		list:      []models.GalleryImage{{ID: "1"}},
		deleteErr: errors.New("permission denied"),
	}
	a, _ := newFakeApp(t, g, "y\n")

	require.ErrorContains(t, a.Delete(context.Background(), "1"), "permission denied")
}

func TestDelete_ListingFailure(t *testing.T) {
	a, _ := newFakeApp(t, &fakeGallery{listErr: errors.New("timeout")}, "")

	require.ErrorContains(t, a.Delete(context.Background(), "1"), "timeout")
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "short", shorten("short", 10))
	assert.Equal(t, "abcdefg...", shorten("abcdefghijklmnop", 10))
}
