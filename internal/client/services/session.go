package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	"github.com/dmitrijs2005/vaultkeeper/internal/vault"
)

// SessionService maps user intents (unlock, lock) onto key lifecycle calls.
type SessionService struct {
	keys KeyManager
	log  logging.Logger
}

func NewSessionService(keys KeyManager, log logging.Logger) *SessionService {
	return &SessionService{keys: keys, log: log}
}

// Unlock makes the master secret's key active.
//
// On an uninitialized vault the secret is committed with EstablishKey and
// created is true. Otherwise the secret is checked with VerifySecret and a
// mismatch yields common.ErrInvalidSecret.
func (s *SessionService) Unlock(ctx context.Context, secret string) (created bool, err error) {
	if secret == "" {
		return false, common.ErrEmptySecret
	}

	state, err := s.keys.State(ctx)
	if err != nil {
		return false, fmt.Errorf("read vault state: %w", err)
	}

	if state == vault.StateUninitialized {
		if err := s.keys.EstablishKey(ctx, secret); err != nil {
			return false, fmt.Errorf("establish key: %w", err)
		}
		s.log.Info(ctx, "vault initialized")
		return true, nil
	}

	ok, err := s.keys.VerifySecret(ctx, secret)
	if err != nil {
		return false, fmt.Errorf("verify secret: %w", err)
	}
	if !ok {
		return false, common.ErrInvalidSecret
	}
	s.log.Info(ctx, "vault unlocked")
	return false, nil
}

// Lock drops the active key.
func (s *SessionService) Lock(ctx context.Context) {
	s.keys.ClearKey()
	s.log.Info(ctx, "vault locked")
}

// Status reports the current lifecycle state.
func (s *SessionService) Status(ctx context.Context) (vault.State, error) {
	return s.keys.State(ctx)
}

// IsUnlocked reports whether a key is active.
func (s *SessionService) IsUnlocked() bool {
	return s.keys.IsReady()
}
