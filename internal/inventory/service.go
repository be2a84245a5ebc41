package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/solstice-erp/solstice-erp/internal/shared"
)

// Service is the stock gate consulted by the sales engine. It reads and
// adjusts inventory but is never driven by quotation or order creation.
type Service struct {
	repo  Repository
	cache *Cache
}

// NewService builds an inventory service.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// AvailableStock reports how many units of a product may be quoted or
// ordered. Products without an inventory record have zero available stock.
func (s *Service) AvailableStock(ctx context.Context, productID int64) (int64, error) {
	if productID <= 0 {
		return 0, fmt.Errorf("%w: invalid product id", shared.ErrValidation)
	}
	level, err := s.repo.GetLevel(ctx, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return level.Quantity, nil
}

// ListLevels returns the full stock snapshot, served from cache when warm.
func (s *Service) ListLevels(ctx context.Context) ([]StockLevel, error) {
	return s.cache.FetchLevels(ctx, s.repo.ListLevels)
}

// Adjust applies a manual stock adjustment and invalidates the snapshot.
func (s *Service) Adjust(ctx context.Context, input AdjustmentInput) (StockLevel, error) {
	if input.ProductID <= 0 {
		return StockLevel{}, fmt.Errorf("%w: invalid product id", shared.ErrValidation)
	}
	if input.Delta == 0 {
		return StockLevel{}, ErrInvalidDelta
	}

	code := "ADJ-" + uuid.NewString()
	level, err := s.repo.Adjust(ctx, input.ProductID, input.Delta, code, input.Note)
	if err != nil {
		return StockLevel{}, err
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		return StockLevel{}, fmt.Errorf("invalidate inventory cache: %w", err)
	}
	return level, nil
}
