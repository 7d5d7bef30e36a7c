package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// KeySize is the length of every derived key (AES-256).
const KeySize = 32

// SaltSize is the length of a freshly generated installation salt.
const SaltSize = 16

const (
	KDFArgon2id = "argon2id"
	KDFPBKDF2   = "pbkdf2"
)

var (
	ErrUnknownKDF = errors.New("unknown key derivation function")
	ErrEmptySalt  = errors.New("salt must not be empty")
)

// KeyDeriver stretches a master secret into symmetric key material.
// Implementations must be deterministic for the same (secret, salt) pair.
// ID names the function so an installation can record which one it uses;
// NewKeyDeriver(ID()) must return an equivalent deriver.
type KeyDeriver interface {
	ID() string
	DeriveKey(secret, salt []byte) ([]byte, error)
}

// Argon2idDeriver derives keys with Argon2id.
type Argon2idDeriver struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// NewArgon2idDeriver returns an Argon2id deriver with interactive-login
// parameters: 3 passes over 64 MiB with 4 lanes.
func NewArgon2idDeriver() *Argon2idDeriver {
	return &Argon2idDeriver{Time: 3, Memory: 64 * 1024, Threads: 4}
}

// ID returns KDFArgon2id.
func (d *Argon2idDeriver) ID() string { return KDFArgon2id }

// DeriveKey returns a KeySize key from secret and salt. An empty salt is
// rejected.
func (d *Argon2idDeriver) DeriveKey(secret, salt []byte) ([]byte, error) {
	if len(salt) == 0 {
		return nil, ErrEmptySalt
	}
	return argon2.IDKey(secret, salt, d.Time, d.Memory, d.Threads, KeySize), nil
}

// PBKDF2Deriver derives keys with PBKDF2-HMAC-SHA256.
type PBKDF2Deriver struct {
	Iterations int
}

// NewPBKDF2Deriver returns a PBKDF2 deriver with 600 000 iterations.
func NewPBKDF2Deriver() *PBKDF2Deriver {
	return &PBKDF2Deriver{Iterations: 600_000}
}

// ID returns KDFPBKDF2.
func (d *PBKDF2Deriver) ID() string { return KDFPBKDF2 }

// DeriveKey returns a KeySize key from secret and salt. An empty salt is
// rejected.
func (d *PBKDF2Deriver) DeriveKey(secret, salt []byte) ([]byte, error) {
	if len(salt) == 0 {
		return nil, ErrEmptySalt
	}
	return pbkdf2.Key(secret, salt, d.Iterations, KeySize, sha256.New), nil
}

// NewKeyDeriver resolves a deriver by its configuration name.
// An empty name selects Argon2id.
func NewKeyDeriver(name string) (KeyDeriver, error) {
	switch name {
	case "", KDFArgon2id:
		return NewArgon2idDeriver(), nil
	case KDFPBKDF2:
		return NewPBKDF2Deriver(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKDF, name)
	}
}

// GenerateSalt returns n random bytes suitable for use as a KDF salt.
func GenerateSalt(n int) ([]byte, error) {
	salt := make([]byte, n)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}
