package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gmfgallery/internal/common"
	"github.com/dmitrijs2005/gmfgallery/internal/logging"
	"github.com/dmitrijs2005/gmfgallery/internal/models"
	"github.com/dmitrijs2005/gmfgallery/internal/repositories/blobs"
	"github.com/dmitrijs2005/gmfgallery/internal/repositories/images"
)

// Stages of AddImage.
const (
	StageValidate = "validate"
	StageBlob     = "blob"
	StageMetadata = "metadata"
)

const storagePrefix = "gallery/"

// AddImageError describes where AddImage stopped.
//
// When Stage is StageMetadata and OrphanedBlob is set, the bytes at
// StoragePath were written but no record points at them.
type AddImageError struct {
	Stage        string
	StoragePath  string
	OrphanedBlob bool
	Err          error
}

func (e *AddImageError) Error() string {
	switch e.Stage {
	case StageBlob:
		return fmt.Sprintf("upload failed: %v", e.Err)
	case StageMetadata:
		return fmt.Sprintf("saving image record failed: %v", e.Err)
	default:
		return fmt.Sprintf("invalid image: %v", e.Err)
	}
}

func (e *AddImageError) Unwrap() error {
	return e.Err
}

// DeleteResult is the outcome of DeleteImageDetailed. OrphanedBlobPath is
// set when the record is gone but its blob could not be removed.
type DeleteResult struct {
	MetadataDeleted  bool
	BlobDeleted      bool
	OrphanedBlobPath string
}

// GalleryService keeps gallery records and their blobs in step.
//
// Add writes the blob first and the record second; delete removes the record
// first and the blob second. Nothing compensates a failed second step.
type GalleryService struct {
	images images.Repository
	blobs  blobs.Repository
	log    logging.Logger
	now    func() time.Time
}

func NewGalleryService(imageRepo images.Repository, blobRepo blobs.Repository, log logging.Logger) *GalleryService {
	return &GalleryService{
		images: imageRepo,
		blobs:  blobRepo,
		log:    log,
		now:    time.Now,
	}
}

// ListImages returns every record, newest first.
func (s *GalleryService) ListImages(ctx context.Context) ([]models.GalleryImage, error) {
	list, err := s.images.ListByDateDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return list, nil
}

// ListImagesOrEmpty is ListImages that logs a failure and returns an empty list.
func (s *GalleryService) ListImagesOrEmpty(ctx context.Context) []models.GalleryImage {
	list, err := s.ListImages(ctx)
	if err != nil {
		s.log.Error(ctx, "error getting images", "error", err)
		return []models.GalleryImage{}
	}
	if list == nil {
		list = []models.GalleryImage{}
	}
	return list
}

// FindImage returns the record with the given id from a fresh listing.
func (s *GalleryService) FindImage(ctx context.Context, id string) (*models.GalleryImage, error) {
	list, err := s.ListImages(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("image %s: %w", id, common.ErrorNotFound)
}

// AddImage stores payload and creates its record. Inline payloads are
// uploaded to the blob store; external URLs are recorded as-is.
//
// Errors are *AddImageError.
func (s *GalleryService) AddImage(ctx context.Context, payload models.ImagePayload, description string) (*models.GalleryImage, error) {
	if !payload.Valid() || strings.TrimSpace(description) == "" {
		return nil, &AddImageError{Stage: StageValidate, Err: common.ErrInvalidPayload}
	}

	image := &models.GalleryImage{
		URL:         payload.ExternalURL,
		Description: description,
	}

	if payload.IsInline() {
		path := s.storagePath(payload.FileName)

		url, err := s.blobs.Put(ctx, path, payload.DataURL)
		if err != nil {
			s.log.Error(ctx, "error uploading image", "storage_path", path, "error", err)
			return nil, &AddImageError{Stage: StageBlob, StoragePath: path, Err: err}
		}

		image.URL = url
		image.StoragePath = path
	}

	image.Date = s.now().UTC().Truncate(time.Millisecond)

	id, err := s.images.Insert(ctx, image)
	if err != nil {
		addErr := &AddImageError{Stage: StageMetadata, StoragePath: image.StoragePath, Err: err}
		if image.HasBlob() {
			addErr.OrphanedBlob = true
			s.log.Warn(ctx, "orphaned blob", "storage_path", image.StoragePath, "error", err)
		} else {
			s.log.Error(ctx, "error saving image record", "error", err)
		}
		return nil, addErr
	}

	image.ID = id
	s.log.Info(ctx, "image added", "id", id, "storage_path", image.StoragePath)
	return image, nil
}

// DeleteImage reports whether DeleteImageDetailed completed without error.
func (s *GalleryService) DeleteImage(ctx context.Context, image models.GalleryImage) bool {
	_, err := s.DeleteImageDetailed(ctx, image)
	return err == nil
}

// DeleteImageDetailed removes the record, then its blob if it has one.
// A record without StoragePath is not an error; only the record is removed.
func (s *GalleryService) DeleteImageDetailed(ctx context.Context, image models.GalleryImage) (DeleteResult, error) {
	var res DeleteResult

	if err := s.images.Delete(ctx, image.ID); err != nil {
		s.log.Error(ctx, "error deleting image", "id", image.ID, "error", err)
		return res, fmt.Errorf("delete image %s: %w", image.ID, err)
	}
	res.MetadataDeleted = true

	if !image.HasBlob() {
		s.log.Warn(ctx, "no storage path found for cleanup, deleted database record only", "id", image.ID)
		return res, nil
	}

	if err := s.blobs.Delete(ctx, image.StoragePath); err != nil {
		res.OrphanedBlobPath = image.StoragePath
		s.log.Warn(ctx, "orphaned blob", "id", image.ID, "storage_path", image.StoragePath, "error", err)
		return res, fmt.Errorf("delete blob %s: %w", image.StoragePath, err)
	}
	res.BlobDeleted = true

	s.log.Info(ctx, "image deleted", "id", image.ID)
	return res, nil
}

func (s *GalleryService) storagePath(fileName string) string {
	name := strings.ReplaceAll(strings.TrimSpace(fileName), "/", "_")
	if name == "" {
		name = uuid.NewString()
	}
	return fmt.Sprintf("%s%d_%s", storagePrefix, s.now().UnixMilli(), name)
}
