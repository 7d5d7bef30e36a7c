package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vaultkeeper/internal/client/models"
	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/dbx"
)

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const selectColumns = `id, user_id, service_name, service_username, encrypted_password,
	format, category_id, is_favorite, created_at, updated_at`

var _ Repository = (*SQLiteRepository)(nil)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *SQLiteRepository) WithTx(tx dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: tx}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, e *models.Entry) error {
	query := `
		INSERT INTO vault_entries (id, user_id, service_name, service_username,
			encrypted_password, format, category_id, is_favorite, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			service_name = excluded.service_name,
			service_username = excluded.service_username,
			encrypted_password = excluded.encrypted_password,
			format = excluded.format,
			category_id = excluded.category_id,
			is_favorite = excluded.is_favorite,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.ServiceName, e.ServiceUsername,
		e.EncryptedPassword, string(e.Format), e.CategoryID, e.IsFavorite,
		e.CreatedAt.UTC(), e.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Entry, error) {
	query := `SELECT ` + selectColumns + ` FROM vault_entries WHERE id = ?`

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Entry, error) {
	query := `SELECT ` + selectColumns + ` FROM vault_entries
		WHERE user_id = ? ORDER BY created_at DESC, id`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return r.list(ctx, query, args...)
}

func (r *SQLiteRepository) ListByFormat(ctx context.Context, userID string, format models.Format) ([]*models.Entry, error) {
	query := `SELECT ` + selectColumns + ` FROM vault_entries
		WHERE user_id = ? AND format = ? ORDER BY created_at, id`
	return r.list(ctx, query, userID, string(format))
}

func (r *SQLiteRepository) Search(ctx context.Context, userID, term string, limit int) ([]*models.Entry, error) {
	pattern := "%" + likeEscaper.Replace(term) + "%"
	query := `SELECT ` + selectColumns + ` FROM vault_entries
		WHERE user_id = ?
		  AND (service_name LIKE ? ESCAPE '\' OR service_username LIKE ? ESCAPE '\')
		ORDER BY created_at DESC, id`
	args := []any{userID, pattern, pattern}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return r.list(ctx, query, args...)
}

func (r *SQLiteRepository) ListByCategory(ctx context.Context, userID, categoryID string) ([]*models.Entry, error) {
	query := `SELECT ` + selectColumns + ` FROM vault_entries
		WHERE user_id = ? AND category_id = ? ORDER BY created_at DESC, id`
	return r.list(ctx, query, userID, categoryID)
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vault_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// RunInTx runs fn against a repository bound to a new transaction. When the
// repository is already bound to a transaction fn reuses it.
func (r *SQLiteRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	b, ok := r.db.(dbx.Beginner)
	if !ok {
		return fn(ctx, r)
	}
	return dbx.WithTx(ctx, b, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, r.WithTx(tx))
	})
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]*models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	result := []*models.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*models.Entry, error) {
	var (
		e      models.Entry
		format string
	)
	err := s.Scan(&e.ID, &e.UserID, &e.ServiceName, &e.ServiceUsername,
		&e.EncryptedPassword, &format, &e.CategoryID, &e.IsFavorite,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Format = models.Format(format)
	return &e, nil
}
