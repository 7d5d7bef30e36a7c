package vault

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/awnumar/memguard"
	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/cryptox"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
)

const (
	verificationPlaintext = "master_password_verification"
	tokenKDFSeparator     = "$"
)

// Option customizes a Service.
type Option func(*Service)

// WithKeyDeriver replaces the default Argon2id deriver. Tests use this to
// plug in cheap parameters.
func WithKeyDeriver(d cryptox.KeyDeriver) Option {
	return func(s *Service) { s.kdf = d }
}

// WithKDFResolver replaces how a KDF id recorded in the verification token
// is turned into a deriver when it differs from the configured one.
func WithKDFResolver(fn func(id string) (cryptox.KeyDeriver, error)) Option {
	return func(s *Service) { s.resolve = fn }
}

// WithLogger attaches a logger. Only lifecycle events are logged.
func WithLogger(l logging.Logger) Option {
	return func(s *Service) { s.log = l }
}

// Service owns the derived key and is the only component that touches it.
// It is safe for concurrent use.
type Service struct {
	store   SecureStore
	kdf     cryptox.KeyDeriver
	resolve func(id string) (cryptox.KeyDeriver, error)
	log     logging.Logger

	mu  sync.RWMutex
	key *memguard.Enclave
}

// NewService returns a locked Service backed by store.
func NewService(store SecureStore, opts ...Option) *Service {
	s := &Service{
		store:   store,
		kdf:     cryptox.NewArgon2idDeriver(),
		resolve: cryptox.NewKeyDeriver,
		log:     logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EstablishKey derives the key for masterSecret and makes it active.
//
// On first use the salt is generated and persisted, and the verification
// token is written under the new key together with the id of the key
// derivation function. An existing token is never overwritten: establishing
// commits to the secret without re-validating it, using the derivation
// function the token records. The key only becomes active after every
// storage write has succeeded.
func (s *Service) EstablishKey(ctx context.Context, masterSecret string) error {
	if masterSecret == "" {
		return common.ErrEmptySecret
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	salt, created, err := s.loadOrCreateSalt(ctx)
	if err != nil {
		return err
	}

	token, err := s.get(ctx, VerificationTokenKey)
	switch {
	case errors.Is(err, common.ErrKeyNotEstablished):
		token = nil
	case err != nil:
		return err
	}

	kdf := s.kdf
	if token != nil {
		kdfID, _ := decodeToken(token)
		if kdf, err = s.deriverFor(ctx, kdfID); err != nil {
			return err
		}
	}

	key, err := s.derive(kdf, masterSecret, salt)
	if err != nil {
		return err
	}

	if token == nil {
		if err := s.writeVerificationToken(ctx, kdf.ID(), key); err != nil {
			common.WipeByteArray(key)
			return err
		}
	}

	s.key = memguard.NewEnclave(key)
	s.log.Info(ctx, "vault key established", "first_use", created, "kdf", kdf.ID())
	return nil
}

// VerifySecret checks candidate against the stored verification token.
//
// It returns (true, nil) and promotes the candidate key to the active key
// when the token opens to the expected value. A wrong secret yields
// (false, nil) and leaves any active key untouched. Missing salt or token
// yields common.ErrKeyNotEstablished.
func (s *Service) VerifySecret(ctx context.Context, candidate string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	salt, err := s.get(ctx, SaltKey)
	if err != nil {
		return false, err
	}
	token, err := s.get(ctx, VerificationTokenKey)
	if err != nil {
		return false, err
	}

	if candidate == "" {
		return false, nil
	}

	kdfID, sealed := decodeToken(token)
	kdf, err := s.deriverFor(ctx, kdfID)
	if err != nil {
		return false, err
	}

	key, err := s.derive(kdf, candidate, salt)
	if err != nil {
		return false, err
	}

	recovered, err := cryptox.OpenString(key, sealed)
	if err != nil || subtle.ConstantTimeCompare([]byte(recovered), []byte(verificationPlaintext)) != 1 {
		common.WipeByteArray(key)
		s.log.Warn(ctx, "master secret rejected")
		return false, nil
	}

	s.key = memguard.NewEnclave(key)
	s.log.Info(ctx, "vault key verified")
	return true, nil
}

// IsReady reports whether a key is active.
func (s *Service) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key != nil
}

// State reports the lifecycle state. A vault is locked only once both the
// salt and the verification token exist; a salt left behind by an
// interrupted setup still reads as uninitialized, and EstablishKey reuses it.
func (s *Service) State(ctx context.Context) (State, error) {
	if s.IsReady() {
		return StateUnlocked, nil
	}

	for _, name := range []string{SaltKey, VerificationTokenKey} {
		_, err := s.store.Get(ctx, name)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return StateUninitialized, nil
		case err != nil:
			return StateUninitialized, storageError("read "+name, err)
		}
	}
	return StateLocked, nil
}

// Encrypt seals plaintext under the active key. Every call uses a fresh
// nonce, so equal plaintexts produce different ciphertexts.
func (s *Service) Encrypt(plaintext string) (string, error) {
	var out string
	err := s.withKey(func(key []byte) error {
		var err error
		out, err = cryptox.SealString(key, plaintext)
		return err
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// Decrypt opens a ciphertext produced by Encrypt. Any parse, integrity or
// encoding failure is reported as common.ErrDecryptionFailed; the input is
// never returned as if it were plaintext.
func (s *Service) Decrypt(ciphertext string) (string, error) {
	var out string
	err := s.withKey(func(key []byte) error {
		pt, err := cryptox.OpenString(key, ciphertext)
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrDecryptionFailed, err)
		}
		out = pt
		return nil
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// ClearKey drops the active key. It is idempotent.
func (s *Service) ClearKey() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return
	}
	s.key = nil
	s.log.Info(context.Background(), "vault key cleared")
}

func (s *Service) withKey(fn func(key []byte) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.key == nil {
		return common.ErrKeyNotEstablished
	}

	buf, err := s.key.Open()
	if err != nil {
		return fmt.Errorf("open key enclave: %w", err)
	}
	defer buf.Destroy()

	return fn(buf.Bytes())
}

func (s *Service) derive(kdf cryptox.KeyDeriver, secret string, salt []byte) ([]byte, error) {
	pw := []byte(secret)
	defer common.WipeByteArray(pw)

	key, err := kdf.DeriveKey(pw, salt)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	if len(key) != cryptox.KeySize {
		common.WipeByteArray(key)
		return nil, fmt.Errorf("derive key: unexpected key length %d", len(key))
	}
	return key, nil
}

// get reads a lifecycle entry, mapping absence to ErrKeyNotEstablished.
func (s *Service) get(ctx context.Context, name string) ([]byte, error) {
	v, err := s.store.Get(ctx, name)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrKeyNotEstablished
	}
	if err != nil {
		return nil, storageError("read "+name, err)
	}
	if len(v) == 0 {
		return nil, storageError("read "+name, errors.New("empty value"))
	}
	return v, nil
}

func (s *Service) loadOrCreateSalt(ctx context.Context) ([]byte, bool, error) {
	salt, err := s.get(ctx, SaltKey)
	if err == nil {
		return salt, false, nil
	}
	if !errors.Is(err, common.ErrKeyNotEstablished) {
		return nil, false, err
	}

	salt, err = cryptox.GenerateSalt(cryptox.SaltSize)
	if err != nil {
		return nil, false, fmt.Errorf("generate salt: %w", err)
	}
	if err := s.store.Set(ctx, SaltKey, salt); err != nil {
		return nil, false, storageError("write salt", err)
	}
	return salt, true, nil
}

func (s *Service) writeVerificationToken(ctx context.Context, kdfID string, key []byte) error {
	sealed, err := cryptox.SealString(key, verificationPlaintext)
	if err != nil {
		return fmt.Errorf("seal verification token: %w", err)
	}
	if err := s.store.Set(ctx, VerificationTokenKey, encodeToken(kdfID, sealed)); err != nil {
		return storageError("write verification token", err)
	}
	return nil
}

// deriverFor returns the deriver an installation was set up with. The
// configured one is used when it matches or when the token predates KDF
// tagging.
func (s *Service) deriverFor(ctx context.Context, kdfID string) (cryptox.KeyDeriver, error) {
	if kdfID == "" || kdfID == s.kdf.ID() {
		return s.kdf, nil
	}
	kdf, err := s.resolve(kdfID)
	if err != nil {
		return nil, fmt.Errorf("verification token: %w", err)
	}
	s.log.Warn(ctx, "configured key derivation ignored for existing vault",
		"configured", s.kdf.ID(), "recorded", kdfID)
	return kdf, nil
}

// encodeToken prefixes the sealed verification string with the KDF id:
// "argon2id$v1:...".
func encodeToken(kdfID, sealed string) []byte {
	return []byte(kdfID + tokenKDFSeparator + sealed)
}

// decodeToken splits a stored token. Untagged tokens yield an empty id.
func decodeToken(raw []byte) (kdfID, sealed string) {
	id, rest, ok := strings.Cut(string(raw), tokenKDFSeparator)
	if !ok {
		return "", string(raw)
	}
	return id, rest
}

func storageError(op string, err error) error {
	if errors.Is(err, common.ErrStorageUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", common.ErrStorageUnavailable, op, err)
}
