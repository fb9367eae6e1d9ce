// Package models holds the gallery domain types shared by repositories,
// services and the admin console.
package models

import "time"

// DateLayout is the textual form of GalleryImage.Date (ISO 8601, UTC, millis).
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// GalleryImage is one gallery record.
//
// StoragePath is set only when the blob store holds the image bytes; its
// presence is what tells DeleteImage to remove a companion blob. URL-only
// records leave it empty.
type GalleryImage struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	StoragePath string    `json:"storagePath,omitempty"`
}

// HasBlob reports whether the record owns a blob in the blob store.
func (i *GalleryImage) HasBlob() bool {
	return i.StoragePath != ""
}

// FormattedDate returns Date in DateLayout, normalized to UTC.
func (i *GalleryImage) FormattedDate() string {
	return i.Date.UTC().Format(DateLayout)
}
