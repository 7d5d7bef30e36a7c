// Package models defines client-side data models of the vault.
package models

import "time"

// Format tags how Entry.EncryptedPassword is stored. It is written alongside
// the value so readers never have to guess.
type Format string

const (
	// FormatV1 is AES-256-GCM ciphertext produced by the vault service.
	FormatV1 Format = "v1"
	// FormatPlain marks records imported before encryption existed; they are
	// re-encrypted by EntryService.MigrateLegacy.
	FormatPlain Format = "plain"
)

// Entry is a vault record as persisted in the entry store. The password is
// only ever held as ciphertext here.
type Entry struct {
	ID                string
	UserID            string
	ServiceName       string
	ServiceUsername   string
	EncryptedPassword string
	Format            Format
	CategoryID        string
	IsFavorite        bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
