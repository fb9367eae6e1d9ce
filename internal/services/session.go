// Package services holds the gallery store's application services: the
// admin session guard and the gallery repository that coordinates the
// metadata and blob stores.
package services

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/dmitrijs2005/gmfgallery/internal/logging"
	"github.com/dmitrijs2005/gmfgallery/internal/repositories/localstate"
)

const (
	credentialKey = "gmf_admin_pass"
	sessionKey    = "gmf_admin_session"
	sessionValue  = "true"
)

// SessionService guards the admin surface with one shared credential and a
// process-wide session flag, both kept in durable local state.
//
// The credential is compared as plain text. There is no identity, expiry or
// lockout; the last Login or Logout wins.
type SessionService struct {
	repo   localstate.Repository
	log    logging.Logger
	seeded bool
}

// NewSessionService binds the guard to repo and stores defaultCredential
// if no credential has been set yet.
func NewSessionService(ctx context.Context, repo localstate.Repository, defaultCredential string, log logging.Logger) (*SessionService, error) {
	s := &SessionService{repo: repo, log: log}

	seeded, err := repo.SetIfAbsent(ctx, credentialKey, []byte(defaultCredential))
	if err != nil {
		return nil, fmt.Errorf("seed admin credential: %w", err)
	}
	s.seeded = seeded
	if seeded {
		log.Info(ctx, "admin credential seeded with default value")
	}

	return s, nil
}

// Seeded reports whether the constructor wrote the default credential.
func (s *SessionService) Seeded() bool {
	return s.seeded
}

// CheckCredential reports whether candidate equals the stored credential.
func (s *SessionService) CheckCredential(ctx context.Context, candidate string) (bool, error) {
	stored, err := s.repo.Get(ctx, credentialKey)
	if err != nil {
		return false, fmt.Errorf("read admin credential: %w", err)
	}
	if stored == nil {
		return false, nil
	}
	return subtle.ConstantTimeCompare(stored, []byte(candidate)) == 1, nil
}

// SetCredential overwrites the stored credential. Length rules belong to the caller.
func (s *SessionService) SetCredential(ctx context.Context, value string) error {
	if err := s.repo.Set(ctx, credentialKey, []byte(value)); err != nil {
		return fmt.Errorf("write admin credential: %w", err)
	}
	s.log.Info(ctx, "admin credential updated")
	return nil
}

// Login sets the session flag.
func (s *SessionService) Login(ctx context.Context) error {
	if err := s.repo.Set(ctx, sessionKey, []byte(sessionValue)); err != nil {
		return fmt.Errorf("open admin session: %w", err)
	}
	s.log.Debug(ctx, "admin session opened")
	return nil
}

// Logout clears the session flag; logging out twice is not an error.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.repo.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("close admin session: %w", err)
	}
	s.log.Debug(ctx, "admin session closed")
	return nil
}

// IsAuthenticated reports whether the session flag is set.
func (s *SessionService) IsAuthenticated(ctx context.Context) (bool, error) {
	v, err := s.repo.Get(ctx, sessionKey)
	if err != nil {
		return false, fmt.Errorf("read admin session: %w", err)
	}
	return string(v) == sessionValue, nil
}
