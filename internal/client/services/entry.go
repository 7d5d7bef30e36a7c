package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vaultkeeper/internal/client/models"
	"github.com/dmitrijs2005/vaultkeeper/internal/client/repositories/entries"
	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	"github.com/google/uuid"
)

// EntryService stores and reads vault records, encrypting passwords on the
// way in and decrypting them on the way out.
type EntryService struct {
	store    entries.Repository
	cipher   Cipher
	identity Identity
	log      logging.Logger
	now      func() time.Time
}

func NewEntryService(store entries.Repository, cipher Cipher, identity Identity, log logging.Logger) *EntryService {
	return &EntryService{
		store:    store,
		cipher:   cipher,
		identity: identity,
		log:      log,
		now:      time.Now,
	}
}

func (s *EntryService) userID() (string, error) {
	if !s.identity.IsAuthenticated() {
		return "", common.ErrUnauthenticated
	}
	return s.identity.CurrentUserID(), nil
}

// owned loads id and checks it belongs to the current user. Records of other
// users are reported as not found.
func (s *EntryService) owned(ctx context.Context, id string) (*models.Entry, error) {
	userID, err := s.userID()
	if err != nil {
		return nil, err
	}
	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving entry: %w", err)
	}
	if e.UserID != userID {
		return nil, fmt.Errorf("error retrieving entry: %w", common.ErrorNotFound)
	}
	return e, nil
}

// Add encrypts n.Password and stores a new record.
func (s *EntryService) Add(ctx context.Context, n models.NewEntry) (*models.Entry, error) {
	userID, err := s.userID()
	if err != nil {
		return nil, err
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}

	ct, err := s.cipher.Encrypt(n.Password)
	if err != nil {
		return nil, fmt.Errorf("encryption error: %w", err)
	}

	now := s.now().UTC()
	e := &models.Entry{
		ID:                uuid.NewString(),
		UserID:            userID,
		ServiceName:       n.ServiceName,
		ServiceUsername:   n.ServiceUsername,
		EncryptedPassword: ct,
		Format:            models.FormatV1,
		CategoryID:        n.CategoryID,
		IsFavorite:        n.IsFavorite,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.store.Upsert(ctx, e); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return e, nil
}

// Get returns the decrypted record. A record that fails to decrypt yields an
// error wrapping common.ErrDecryptionFailed.
func (s *EntryService) Get(ctx context.Context, id string) (*models.EntryView, error) {
	e, err := s.owned(ctx, id)
	if err != nil {
		return nil, err
	}

	pw, err := s.reveal(e)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	v := e.View(pw)
	return &v, nil
}

// List returns up to limit decrypted records, newest first. Records that
// cannot be decrypted are returned with Unreadable set so one bad record does
// not hide the rest; a missing key still fails the whole call.
func (s *EntryService) List(ctx context.Context, limit int) ([]models.EntryView, error) {
	userID, err := s.userID()
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	return s.views(ctx, rows)
}

// Search returns up to limit decrypted records whose service name or
// username contains term, ignoring case, newest first.
func (s *EntryService) Search(ctx context.Context, term string, limit int) ([]models.EntryView, error) {
	userID, err := s.userID()
	if err != nil {
		return nil, err
	}

	rows, err := s.store.Search(ctx, userID, term, limit)
	if err != nil {
		return nil, fmt.Errorf("error searching entries: %w", err)
	}
	return s.views(ctx, rows)
}

// ListByCategory returns the decrypted records filed under category, newest
// first.
func (s *EntryService) ListByCategory(ctx context.Context, category string) ([]models.EntryView, error) {
	userID, err := s.userID()
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ListByCategory(ctx, userID, category)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	return s.views(ctx, rows)
}

func (s *EntryService) views(ctx context.Context, rows []*models.Entry) ([]models.EntryView, error) {
	result := make([]models.EntryView, 0, len(rows))
	for _, e := range rows {
		pw, err := s.reveal(e)
		switch {
		case err == nil:
			result = append(result, e.View(pw))
		case errors.Is(err, common.ErrDecryptionFailed):
			s.log.Warn(ctx, "entry unreadable", "entry_id", e.ID)
			result = append(result, e.UnreadableView())
		default:
			return nil, err
		}
	}
	return result, nil
}

// UpdatePassword re-encrypts a record with a new password.
func (s *EntryService) UpdatePassword(ctx context.Context, id, password string) error {
	e, err := s.owned(ctx, id)
	if err != nil {
		return err
	}

	ct, err := s.cipher.Encrypt(password)
	if err != nil {
		return fmt.Errorf("encryption error: %w", err)
	}
	e.EncryptedPassword = ct
	e.Format = models.FormatV1
	e.UpdatedAt = s.now().UTC()

	if err := s.store.Upsert(ctx, e); err != nil {
		return fmt.Errorf("saving error: %w", err)
	}
	return nil
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (s *EntryService) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	e, err := s.owned(ctx, id)
	if err != nil {
		return false, err
	}
	e.IsFavorite = !e.IsFavorite
	e.UpdatedAt = s.now().UTC()

	if err := s.store.Upsert(ctx, e); err != nil {
		return false, fmt.Errorf("saving error: %w", err)
	}
	return e.IsFavorite, nil
}

func (s *EntryService) Delete(ctx context.Context, id string) error {
	if _, err := s.owned(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("error deleting entry: %w", err)
	}
	return nil
}

// MigrateLegacy encrypts every record of the current user tagged
// models.FormatPlain and returns how many were converted. Records are
// selected by their tag only. The conversion is all or nothing: on any
// failure no record is changed.
func (s *EntryService) MigrateLegacy(ctx context.Context) (int, error) {
	userID, err := s.userID()
	if err != nil {
		return 0, err
	}

	legacy, err := s.store.ListByFormat(ctx, userID, models.FormatPlain)
	if err != nil {
		return 0, fmt.Errorf("error listing legacy entries: %w", err)
	}
	if len(legacy) == 0 {
		return 0, nil
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context, repo entries.Repository) error {
		for _, e := range legacy {
			ct, err := s.cipher.Encrypt(e.EncryptedPassword)
			if err != nil {
				return fmt.Errorf("encryption error: %w", err)
			}
			e.EncryptedPassword = ct
			e.Format = models.FormatV1
			e.UpdatedAt = s.now().UTC()

			if err := repo.Upsert(ctx, e); err != nil {
				return fmt.Errorf("saving error: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info(ctx, "legacy entries migrated", "count", len(legacy))
	return len(legacy), nil
}

// reveal decrypts the stored password according to the record's format tag.
// Nothing is revealed while the vault is locked, legacy plaintext included.
func (s *EntryService) reveal(e *models.Entry) (string, error) {
	if !s.cipher.IsReady() {
		return "", common.ErrKeyNotEstablished
	}
	switch e.Format {
	case models.FormatV1:
		return s.cipher.Decrypt(e.EncryptedPassword)
	case models.FormatPlain:
		return e.EncryptedPassword, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", common.ErrDecryptionFailed, e.Format)
	}
}
