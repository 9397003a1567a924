package service

import (
	"context"
	"errors"
	"math"

	"alfaraz/spareparts/internal/apperr"
	"alfaraz/spareparts/internal/config"
	"alfaraz/spareparts/internal/repository"
)

// LineItem is one entry of a finalized cart as posted by the client. Price and
// quantity are loosely typed on the wire (numbers or numeric strings); the
// engine coerces them before opening the transaction.
type LineItem struct {
	PartID   int `json:"part_id"`
	Price    any `json:"price"`
	Quantity any `json:"quantity"`
}

type checkoutLine struct {
	partID   int
	price    float64
	quantity int
}

// CheckoutService converts carts into order rows and stock decrements as a
// single atomic unit. It is the sole writer of orders and the sole mutator of
// part stock after creation.
//
// In the default configuration it reproduces the reference behavior: the
// client-supplied price is trusted and stock is decremented without a
// re-check, so oversell is possible. The LockStock flag takes a FOR UPDATE
// row lock and refuses to oversell; VerifyPrice replaces the client price
// with the current catalog price.
type CheckoutService struct {
	repo *repository.Repository
	cfg  config.Checkout
}

func NewCheckoutService(repo *repository.Repository, cfg config.Checkout) *CheckoutService {
	return &CheckoutService{repo: repo, cfg: cfg}
}

// Checkout processes the items in the order given. Either every order row and
// every stock decrement commits, or none do. Returns the grand total rounded
// to 2 decimal places.
func (s *CheckoutService) Checkout(ctx context.Context, userID int, items []LineItem) (float64, error) {
	if userID <= 0 || len(items) == 0 {
		return 0, apperr.New(apperr.Validation, "user_id and items required")
	}

	// Coerce every line up front. A single malformed value must fail the
	// whole checkout with zero writes, so no transaction is opened yet.
	lines := make([]checkoutLine, 0, len(items))
	for _, it := range items {
		price, err := toFloat(it.Price)
		if err != nil {
			return 0, apperr.New(apperr.Validation, "Invalid price or quantity")
		}
		quantity, err := toInt(it.Quantity)
		if err != nil {
			return 0, apperr.New(apperr.Validation, "Invalid price or quantity")
		}
		lines = append(lines, checkoutLine{partID: it.PartID, price: price, quantity: quantity})
	}

	var total float64
	err := s.repo.RunAtomic(ctx, func(ctx context.Context) error {
		for _, ln := range lines {
			price := ln.price

			if s.cfg.LockStock || s.cfg.VerifyPrice {
				catalogPrice, stock, err := s.repo.PartForUpdate(ctx, ln.partID)
				if err != nil {
					return err
				}
				if s.cfg.LockStock && stock < ln.quantity {
					return apperr.New(apperr.Checkout, "insufficient stock")
				}
				if s.cfg.VerifyPrice {
					price = catalogPrice
				}
			}

			lineTotal := price * float64(ln.quantity)

			if err := s.repo.InsertOrder(ctx, userID, ln.partID, ln.quantity, lineTotal); err != nil {
				return err
			}
			if err := s.repo.DecrementStock(ctx, ln.partID, ln.quantity); err != nil {
				return err
			}

			total += lineTotal
		}
		return nil
	})
	if err != nil {
		// The transaction has already rolled back; surface the failure as a
		// checkout error carrying the underlying message.
		var ae *apperr.Error
		if errors.As(err, &ae) && (ae.Kind == apperr.Validation || ae.Kind == apperr.Checkout) {
			return 0, err
		}
		return 0, apperr.Wrap(apperr.Checkout, "checkout failed", err)
	}

	return math.Round(total*100) / 100, nil
}
