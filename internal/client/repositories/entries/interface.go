package entries

import (
	"context"

	"github.com/dmitrijs2005/vaultkeeper/internal/client/models"
)

// Repository describes CRUD and query operations for vault records.
// Implementations return common.ErrorNotFound for a missing id.
type Repository interface {
	// Upsert inserts a new record or replaces an existing one by ID.
	Upsert(ctx context.Context, entry *models.Entry) error

	// GetByID returns a record by its identifier.
	GetByID(ctx context.Context, id string) (*models.Entry, error)

	// ListByUser returns up to limit records of userID, newest first.
	// A non-positive limit returns every record.
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.Entry, error)

	// ListByFormat returns every record of userID stored with format.
	ListByFormat(ctx context.Context, userID string, format models.Format) ([]*models.Entry, error)

	// Search returns up to limit records of userID whose service name or
	// username contains term, ignoring case, newest first.
	Search(ctx context.Context, userID, term string, limit int) ([]*models.Entry, error)

	// ListByCategory returns every record of userID in categoryID, newest first.
	ListByCategory(ctx context.Context, userID, categoryID string) ([]*models.Entry, error)

	// DeleteByID removes a record.
	DeleteByID(ctx context.Context, id string) error

	// RunInTx calls fn with a repository whose writes commit together when
	// fn returns nil and are discarded otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
