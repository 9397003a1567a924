package repository

import (
	"context"
	"errors"
	"fmt"

	"alfaraz/spareparts/internal/apperr"
	"alfaraz/spareparts/internal/model"

	"github.com/jackc/pgx/v5"
)

// ListParts returns the catalog, most-recently-created first.
func (r *Repository) ListParts(ctx context.Context) ([]model.Part, error) {
	rows, err := r.getExecutor(ctx).Query(ctx,
		"SELECT id, name, price, quantity FROM spare_parts ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	defer rows.Close()

	parts := []model.Part{}
	for rows.Next() {
		var p model.Part
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan part: %w", err)
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

func (r *Repository) InsertPart(ctx context.Context, name string, price float64, quantity int) (int, error) {
	var id int
	err := r.getExecutor(ctx).QueryRow(ctx,
		"INSERT INTO spare_parts (name, price, quantity) VALUES ($1, $2, $3) RETURNING id",
		name, price, quantity).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert part: %w", err)
	}
	return id, nil
}

func (r *Repository) UpdatePart(ctx context.Context, id int, name string, price float64, quantity int) error {
	tag, err := r.getExecutor(ctx).Exec(ctx,
		"UPDATE spare_parts SET name = $1, price = $2, quantity = $3 WHERE id = $4",
		name, price, quantity, id)
	if err != nil {
		return fmt.Errorf("failed to update part: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "Part not found")
	}
	return nil
}

func (r *Repository) DeletePart(ctx context.Context, id int) error {
	tag, err := r.getExecutor(ctx).Exec(ctx, "DELETE FROM spare_parts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete part: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "Part not found")
	}
	return nil
}

// PartForUpdate locks the part row and returns its price and quantity on hand.
// Only used by the hardened checkout modes.
func (r *Repository) PartForUpdate(ctx context.Context, id int) (float64, int, error) {
	var price float64
	var quantity int
	err := r.getExecutor(ctx).QueryRow(ctx,
		"SELECT price, quantity FROM spare_parts WHERE id = $1 FOR UPDATE",
		id).Scan(&price, &quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, apperr.New(apperr.NotFound, "Part not found")
		}
		return 0, 0, fmt.Errorf("failed to get part: %w", err)
	}
	return price, quantity, nil
}

// DecrementStock subtracts quantity from the part's stock. No floor check here:
// the caller decides whether oversell is allowed.
func (r *Repository) DecrementStock(ctx context.Context, id, quantity int) error {
	_, err := r.getExecutor(ctx).Exec(ctx,
		"UPDATE spare_parts SET quantity = quantity - $1 WHERE id = $2", quantity, id)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	return nil
}
