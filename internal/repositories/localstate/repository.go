// Package localstate stores the client-scoped key-value slots of the admin
// console (credential and session flag). Slots survive restarts and never
// leave the machine.
package localstate

import "context"

// Repository is a durable key-value surface.
//
// Get returns (nil, nil) for an absent key. Delete of an absent key is not an
// error. SetIfAbsent writes only when the key is missing and reports whether
// it did.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error)
}
