// Package common defines shared sentinel errors and small helpers used across
// the gallery store layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	ErrorNotFound = errors.New("not found")

	// Payload handed to the gallery service is neither inline content nor an external URL,
	// or carries both.
	ErrInvalidPayload = errors.New("invalid image payload")

	// Configuration names a storage backend that does not exist.
	ErrUnknownBackend = errors.New("unknown backend")
)
