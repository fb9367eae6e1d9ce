// Package ingest turns what the admin supplies (a local image file or a
// typed URL) into the payload the gallery service stores.
package ingest

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dmitrijs2005/gmfgallery/internal/dataurlx"
	"github.com/dmitrijs2005/gmfgallery/internal/models"
)

var (
	ErrNotAnImage         = errors.New("not an image file")
	ErrMissingSource      = errors.New("image file or URL is required")
	ErrMissingDescription = errors.New("description is required")
)

var readFile = os.ReadFile

// Normalizer is stateless; the zero value is ready to use.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// FromFile accepts an already loaded file. mimeType must parse as an image
// media type; its parameters are carried into the data URL.
func (n *Normalizer) FromFile(name, mimeType string, content []byte) (models.ImagePayload, error) {
	mediaType, params, err := mime.ParseMediaType(mimeType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return models.ImagePayload{}, ErrNotAnImage
	}

	return models.ImagePayload{
		DataURL:  dataurlx.Encode(mediaType, content, paramPairs(params)...),
		FileName: filepath.Base(name),
	}, nil
}

// FromPath reads a file from disk. The MIME type comes from the file
// extension, falling back to content sniffing.
func (n *Normalizer) FromPath(path string) (models.ImagePayload, error) {
	content, err := readFile(path)
	if err != nil {
		return models.ImagePayload{}, fmt.Errorf("read %s: %w", path, err)
	}

	return n.FromFile(path, detectMIME(path, content), content)
}

// FromURL passes raw through as an external reference. Reachability and
// content type are not checked.
func (n *Normalizer) FromURL(raw string) (models.ImagePayload, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.ImagePayload{}, ErrMissingSource
	}
	return models.ImagePayload{ExternalURL: raw}, nil
}

// Prepare picks the payload to submit. An inline file wins over a typed URL.
func (n *Normalizer) Prepare(file *models.ImagePayload, rawURL, description string) (models.ImagePayload, string, error) {
	description = strings.TrimSpace(description)

	var payload models.ImagePayload
	switch {
	case file != nil && file.IsInline():
		payload = *file
	case strings.TrimSpace(rawURL) != "":
		p, err := n.FromURL(rawURL)
		if err != nil {
			return models.ImagePayload{}, "", err
		}
		payload = p
	default:
		return models.ImagePayload{}, "", ErrMissingSource
	}

	if description == "" {
		return models.ImagePayload{}, "", ErrMissingDescription
	}

	return payload, description, nil
}

func paramPairs(params map[string]string) []string {
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)

	pairs := make([]string, 0, 2*len(names))
	for _, k := range names {
		pairs = append(pairs, k, params[k])
	}
	return pairs
}

func detectMIME(path string, content []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		if mt, _, err := mime.ParseMediaType(t); err == nil {
			return mt
		}
	}

	mt, _, err := mime.ParseMediaType(http.DetectContentType(content))
	if err != nil {
		return "application/octet-stream"
	}
	return mt
}
