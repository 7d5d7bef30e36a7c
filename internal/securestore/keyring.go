// Package securestore adapts the operating system credential store to the
// vault's secure storage contract.
package securestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/99designs/keyring"
	"github.com/dmitrijs2005/vaultkeeper/internal/common"
)

// DefaultServiceName namespaces the vault's entries inside the keyring.
const DefaultServiceName = "vaultkeeper"

// Config selects and parameterizes a keyring backend.
type Config struct {
	ServiceName string
	// FileDir enables the encrypted-file backend, used when no native
	// keychain is present (headless Linux, CI).
	FileDir string
	// FilePassword unlocks the file backend.
	FilePassword string
}

// KeyringStore implements vault.SecureStore on top of keyring.Keyring.
type KeyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore wraps an opened keyring.
func NewKeyringStore(ring keyring.Keyring) *KeyringStore {
	return &KeyringStore{ring: ring}
}

// Open opens the platform keyring. When cfg.FileDir is set the file backend
// is allowed as a fallback behind the native ones.
func Open(cfg Config) (*KeyringStore, error) {
	name := cfg.ServiceName
	if name == "" {
		name = DefaultServiceName
	}

	kc := keyring.Config{
		ServiceName:              name,
		KeychainTrustApplication: true,
		KeychainSynchronizable:   false,
	}
	if cfg.FileDir != "" {
		kc.AllowedBackends = append(keyring.AvailableBackends(), keyring.FileBackend)
		kc.FileDir = cfg.FileDir
		kc.FilePasswordFunc = keyring.FixedStringPrompt(cfg.FilePassword)
	}

	ring, err := keyring.Open(kc)
	if err != nil {
		return nil, fmt.Errorf("%w: open keyring: %w", common.ErrStorageUnavailable, err)
	}
	return NewKeyringStore(ring), nil
}

func (s *KeyringStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	item, err := s.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("keyring get %s: %w", key, err)
	}
	return item.Data, nil
}

func (s *KeyringStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.ring.Set(keyring.Item{
		Key:   key,
		Data:  value,
		Label: DefaultServiceName + " " + key,
	})
	if err != nil {
		return fmt.Errorf("keyring set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *KeyringStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("keyring remove %s: %w", key, err)
	}
	return nil
}
