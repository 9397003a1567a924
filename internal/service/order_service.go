package service

import (
	"context"

	"alfaraz/spareparts/internal/model"
	"alfaraz/spareparts/internal/repository"
)

// OrderService serves the read side of the ledger. No locking: orders are
// immutable once written.
type OrderService struct {
	repo *repository.Repository
}

func NewOrderService(repo *repository.Repository) *OrderService {
	return &OrderService{repo: repo}
}

func (s *OrderService) ForUser(ctx context.Context, userID int) ([]model.UserOrder, error) {
	return s.repo.OrdersForUser(ctx, userID)
}

func (s *OrderService) All(ctx context.Context) ([]model.AdminOrder, error) {
	return s.repo.AllOrders(ctx)
}
