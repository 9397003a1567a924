package repository

import (
	"context"
	"errors"
	"fmt"

	"alfaraz/spareparts/internal/apperr"
	"alfaraz/spareparts/internal/model"

	"github.com/jackc/pgx/v5"
)

// InsertUser stores a new user with an already-hashed password and returns its id.
func (r *Repository) InsertUser(ctx context.Context, name, email, passwordHash string) (int, error) {
	var id int
	err := r.getExecutor(ctx).QueryRow(ctx,
		"INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING id",
		name, email, passwordHash).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperr.New(apperr.Duplicate, "Email already registered")
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (r *Repository) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.getExecutor(ctx).QueryRow(ctx,
		"SELECT id, name, email, password FROM users WHERE email = $1",
		email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}
