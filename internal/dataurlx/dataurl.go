// Package dataurlx converts between raw image bytes and the inline data URL
// form the ingestion path produces (data:image/png;base64,...).
package dataurlx

import (
	"errors"
	"fmt"

	"github.com/vincent-petithory/dataurl"
)

var ErrNotDataURL = errors.New("not a data URL")

// Encode returns a base64 data URL for content of the given bare MIME type
// ("image/png"). paramPairs are optional name, value pairs.
func Encode(mimeType string, content []byte, paramPairs ...string) string {
	return dataurl.New(content, mimeType, paramPairs...).String()
}

// Decode parses a data URL and returns its bytes and content type
// (e.g. "image/png").
func Decode(s string) ([]byte, string, error) {
	du, err := dataurl.DecodeString(s)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNotDataURL, err)
	}
	return du.Data, du.MediaType.ContentType(), nil
}
