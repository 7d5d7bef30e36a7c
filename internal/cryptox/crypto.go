package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"
)

// FormatV1 tags AES-256-GCM ciphertext strings produced by SealString.
const FormatV1 = "v1"

const formatSeparator = ":"

var (
	ErrUnsupportedFormat = errors.New("unsupported ciphertext format")
	ErrMalformed         = errors.New("malformed ciphertext")
	ErrAuthentication    = errors.New("message authentication failed")
	ErrNotText           = errors.New("plaintext is not valid UTF-8")
)

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// SealString encrypts plaintext with AES-GCM under key and returns a
// self-describing string "v1:" + base64(nonce || ciphertext || tag).
//
// A fresh random nonce is drawn on every call, so sealing the same plaintext
// twice yields different strings. The format tag is bound as additional
// authenticated data.
func SealString(key []byte, plaintext string) (string, error) {
	aead, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), []byte(FormatV1))
	return FormatV1 + formatSeparator + base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenString reverses SealString. It never returns partial plaintext: any
// parse, authentication or encoding problem yields an error and "".
func OpenString(key []byte, s string) (string, error) {
	format, payload, ok := strings.Cut(s, formatSeparator)
	if !ok {
		return "", ErrMalformed
	}
	if format != FormatV1 {
		return "", ErrUnsupportedFormat
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrMalformed
	}

	aead, err := newGCM(key)
	if err != nil {
		return "", err
	}
	if len(raw) < aead.NonceSize()+aead.Overhead() {
		return "", ErrMalformed
	}

	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, []byte(FormatV1))
	if err != nil {
		return "", ErrAuthentication
	}
	if !utf8.Valid(plaintext) {
		return "", ErrNotText
	}
	return string(plaintext), nil
}
