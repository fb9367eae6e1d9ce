package localstate

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// Seams over the OS keyring; tests call keyring.MockInit instead.
var (
	keyringGet    = keyring.Get
	keyringSet    = keyring.Set
	keyringDelete = keyring.Delete
)

// KeyringRepository keeps slots in the OS keyring, one secret per key under a
// shared service name.
type KeyringRepository struct {
	service string
}

func NewKeyringRepository(service string) *KeyringRepository {
	return &KeyringRepository{service: service}
}

func (r *KeyringRepository) Get(_ context.Context, key string) ([]byte, error) {
	v, err := keyringGet(r.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("keyring get %s: %w", key, err)
	}
	return []byte(v), nil
}

func (r *KeyringRepository) Set(_ context.Context, key string, value []byte) error {
	if err := keyringSet(r.service, key, string(value)); err != nil {
		return fmt.Errorf("keyring set %s: %w", key, err)
	}
	return nil
}

func (r *KeyringRepository) Delete(_ context.Context, key string) error {
	err := keyringDelete(r.service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete %s: %w", key, err)
	}
	return nil
}

// SetIfAbsent is a read-then-write; the keyring offers no compare-and-set.
func (r *KeyringRepository) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	current, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if current != nil {
		return false, nil
	}
	if err := r.Set(ctx, key, value); err != nil {
		return false, err
	}
	return true, nil
}
