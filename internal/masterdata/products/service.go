package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/solstice-erp/solstice-erp/internal/shared"
)

// Service coordinates product catalogue operations.
type Service struct {
	repo Repository
}

// NewService builds a product service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, fmt.Errorf("%w: invalid product id", shared.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (Product, error) {
	p := Product{
		Code:          strings.TrimSpace(req.Code),
		Name:          strings.TrimSpace(req.Name),
		Model:         req.Model,
		Specification: req.Specification,
		Certification: req.Certification,
		UnitPrice:     req.UnitPrice,
		IsActive:      true,
	}
	if err := s.validate(p); err != nil {
		return Product{}, err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) (Product, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}

	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Model != nil {
		existing.Model = req.Model
	}
	if req.Specification != nil {
		existing.Specification = req.Specification
	}
	if req.Certification != nil {
		existing.Certification = req.Certification
	}
	if req.UnitPrice != nil {
		existing.UnitPrice = *req.UnitPrice
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if err := s.validate(existing); err != nil {
		return Product{}, err
	}

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Product{}, err
	}
	return s.repo.Get(ctx, id)
}
