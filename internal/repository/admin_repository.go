package repository

import (
	"context"
	"errors"
	"fmt"

	"alfaraz/spareparts/internal/apperr"
	"alfaraz/spareparts/internal/model"

	"github.com/jackc/pgx/v5"
)

func (r *Repository) AdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var a model.Admin
	err := r.getExecutor(ctx).QueryRow(ctx,
		"SELECT id, username, password FROM admin WHERE username = $1",
		username).Scan(&a.ID, &a.Username, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "Admin not found")
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &a, nil
}

// InsertAdminIfAbsent seeds the administrator row. The conflict clause keeps
// the seed idempotent: an existing admin's hash is never overwritten.
func (r *Repository) InsertAdminIfAbsent(ctx context.Context, username, passwordHash string) error {
	_, err := r.getExecutor(ctx).Exec(ctx,
		"INSERT INTO admin (username, password) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING",
		username, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	return nil
}
