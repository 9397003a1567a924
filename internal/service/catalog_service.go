package service

import (
	"context"

	"alfaraz/spareparts/internal/apperr"
	"alfaraz/spareparts/internal/model"
	"alfaraz/spareparts/internal/repository"
)

type CatalogService struct {
	repo *repository.Repository
}

func NewCatalogService(repo *repository.Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) List(ctx context.Context) ([]model.Part, error) {
	return s.repo.ListParts(ctx)
}

func (s *CatalogService) Create(ctx context.Context, name string, price, quantity any) (int, error) {
	if name == "" || price == nil || quantity == nil {
		return 0, apperr.New(apperr.Validation, "name, price, and quantity required")
	}
	p, q, err := parsePartFields(price, quantity, "Invalid price or quantity")
	if err != nil {
		return 0, err
	}
	return s.repo.InsertPart(ctx, name, p, q)
}

func (s *CatalogService) Update(ctx context.Context, id int, name string, price, quantity any) error {
	if name == "" || price == nil || quantity == nil {
		return apperr.New(apperr.Validation, "Invalid data")
	}
	p, q, err := parsePartFields(price, quantity, "Invalid data")
	if err != nil {
		return err
	}
	return s.repo.UpdatePart(ctx, id, name, p, q)
}

func (s *CatalogService) Delete(ctx context.Context, id int) error {
	return s.repo.DeletePart(ctx, id)
}

// parsePartFields coerces the loosely typed price and quantity and rejects
// non-numeric or negative values before anything is written.
func parsePartFields(price, quantity any, badMsg string) (float64, int, error) {
	p, err := toFloat(price)
	if err != nil {
		return 0, 0, apperr.New(apperr.Validation, badMsg)
	}
	q, err := toInt(quantity)
	if err != nil {
		return 0, 0, apperr.New(apperr.Validation, badMsg)
	}
	if p < 0 || q < 0 {
		return 0, 0, apperr.New(apperr.Validation, badMsg)
	}
	return p, q, nil
}
