package repository

import (
	"context"
	"fmt"

	"alfaraz/spareparts/internal/model"
)

// InsertOrder appends one line item to the ledger. Only the checkout engine
// calls this.
func (r *Repository) InsertOrder(ctx context.Context, userID, partID, quantity int, totalPrice float64) error {
	_, err := r.getExecutor(ctx).Exec(ctx,
		"INSERT INTO orders (user_id, part_id, quantity, total_price) VALUES ($1, $2, $3, $4)",
		userID, partID, quantity, totalPrice)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// OrdersForUser returns the user's orders joined with part names, newest first.
func (r *Repository) OrdersForUser(ctx context.Context, userID int) ([]model.UserOrder, error) {
	rows, err := r.getExecutor(ctx).Query(ctx,
		`SELECT o.id, o.user_id, o.part_id, o.quantity, o.total_price, o.order_date, p.name AS part_name
		 FROM orders o
		 LEFT JOIN spare_parts p ON o.part_id = p.id
		 WHERE o.user_id = $1
		 ORDER BY o.order_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []model.UserOrder{}
	for rows.Next() {
		var o model.UserOrder
		if err := rows.Scan(&o.ID, &o.UserID, &o.PartID, &o.Quantity, &o.TotalPrice, &o.OrderDate, &o.PartName); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// AllOrders returns every order joined with user and part names, newest first.
func (r *Repository) AllOrders(ctx context.Context) ([]model.AdminOrder, error) {
	rows, err := r.getExecutor(ctx).Query(ctx,
		`SELECT o.id, o.user_id, o.part_id, o.quantity, o.total_price, o.order_date,
		        u.name AS user_name, p.name AS part_name
		 FROM orders o
		 LEFT JOIN users u ON o.user_id = u.id
		 LEFT JOIN spare_parts p ON o.part_id = p.id
		 ORDER BY o.order_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []model.AdminOrder{}
	for rows.Next() {
		var o model.AdminOrder
		if err := rows.Scan(&o.ID, &o.UserID, &o.PartID, &o.Quantity, &o.TotalPrice, &o.OrderDate, &o.UserName, &o.PartName); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
