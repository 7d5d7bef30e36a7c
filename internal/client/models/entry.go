package models

import (
	"errors"
	"strings"
	"time"
)

var ErrServiceNameRequired = errors.New("service name is required")

// NewEntry is the caller-supplied plaintext form of a vault record.
type NewEntry struct {
	ServiceName     string
	ServiceUsername string
	Password        string
	CategoryID      string
	IsFavorite      bool
}

// Validate checks the fields the store requires.
func (n NewEntry) Validate() error {
	if strings.TrimSpace(n.ServiceName) == "" {
		return ErrServiceNameRequired
	}
	return nil
}

// EntryView is a decrypted record for display. When Unreadable is set the
// password could not be decrypted and Password is empty.
type EntryView struct {
	ID              string
	ServiceName     string
	ServiceUsername string
	Password        string
	CategoryID      string
	IsFavorite      bool
	CreatedAt       time.Time
	Unreadable      bool
}

// View builds an EntryView with the given password.
func (e *Entry) View(password string) EntryView {
	return EntryView{
		ID:              e.ID,
		ServiceName:     e.ServiceName,
		ServiceUsername: e.ServiceUsername,
		Password:        password,
		CategoryID:      e.CategoryID,
		IsFavorite:      e.IsFavorite,
		CreatedAt:       e.CreatedAt,
	}
}

// UnreadableView builds an EntryView for a record whose password failed to
// decrypt.
func (e *Entry) UnreadableView() EntryView {
	v := e.View("")
	v.Unreadable = true
	return v
}
