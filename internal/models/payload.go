package models

// ImagePayload is what the gallery service accepts for a new image: either
// inline content encoded as a data URL (with the originating file name) or an
// external URL used as-is. Exactly one of DataURL and ExternalURL is set.
type ImagePayload struct {
	DataURL     string
	FileName    string
	ExternalURL string
}

// IsInline reports whether the payload carries the image bytes.
func (p ImagePayload) IsInline() bool {
	return p.DataURL != ""
}

// Valid reports whether exactly one source is set.
func (p ImagePayload) Valid() bool {
	return (p.DataURL != "") != (p.ExternalURL != "")
}
