// Package common defines shared sentinel errors and small helpers used across
// the vault layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Key lifecycle errors.
	ErrKeyNotEstablished = errors.New("encryption key not established")
	ErrInvalidSecret     = errors.New("invalid master secret")
	ErrEmptySecret       = errors.New("master secret must not be empty")

	// Ciphertext errors.
	ErrDecryptionFailed = errors.New("decryption failed")

	// Secure storage errors.
	ErrStorageUnavailable = errors.New("secure storage unavailable")

	// Session errors.
	ErrUnauthenticated = errors.New("not authenticated")
)
