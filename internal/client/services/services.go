// Package services contains application services of the vault client.
//
// SessionService drives the key lifecycle (unlock, lock, status) and
// EntryService is the only path by which vault records cross the boundary
// between plaintext and ciphertext. Both depend on small interfaces so tests
// can swap collaborators.
package services

import (
	"context"

	"github.com/dmitrijs2005/vaultkeeper/internal/vault"
)

// Cipher encrypts and decrypts credential strings under the active key.
// IsReady reports whether a key is held.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
	IsReady() bool
}

// KeyManager owns the master key lifecycle. *vault.Service implements it.
type KeyManager interface {
	State(ctx context.Context) (vault.State, error)
	EstablishKey(ctx context.Context, masterSecret string) error
	VerifySecret(ctx context.Context, candidate string) (bool, error)
	IsReady() bool
	ClearKey()
}

// Identity is the authentication oracle: who is signed in, if anyone.
type Identity interface {
	CurrentUserID() string
	IsAuthenticated() bool
}

// StaticIdentity is an Identity with a fixed user, used by the standalone CLI
// where the profile comes from configuration.
type StaticIdentity string

func (s StaticIdentity) CurrentUserID() string { return string(s) }

func (s StaticIdentity) IsAuthenticated() bool { return s != "" }

var (
	_ Cipher     = (*vault.Service)(nil)
	_ KeyManager = (*vault.Service)(nil)
)
