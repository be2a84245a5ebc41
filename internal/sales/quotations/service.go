package quotations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/solstice-erp/solstice-erp/internal/masterdata/products"
	"github.com/solstice-erp/solstice-erp/internal/sales/customers"
	"github.com/solstice-erp/solstice-erp/internal/shared"
)

// StockGate reports how many units of a product may still be quoted.
type StockGate interface {
	AvailableStock(ctx context.Context, productID int64) (int64, error)
}

// Service coordinates quotation operations.
type Service struct {
	repo         Repository
	customerRepo customers.Repository
	productRepo  products.Repository
	stock        StockGate
	validityDays int
}

// NewService builds a quotation service. validityDays is applied when a
// request omits valid_until; zero falls back to DefaultValidityDays.
func NewService(repo Repository, customerRepo customers.Repository, productRepo products.Repository, stock StockGate, validityDays int) *Service {
	if validityDays <= 0 {
		validityDays = DefaultValidityDays
	}
	return &Service{
		repo:         repo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		stock:        stock,
		validityDays: validityDays,
	}
}

// Create builds, validates and persists a new Pending quotation.
func (s *Service) Create(ctx context.Context, req CreateQuotationRequest) (*Quotation, error) {
	if _, err := s.customerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, dependencyErr("customer", req.CustomerID, err)
	}

	validUntil := req.QuoteDate.AddDate(0, 0, s.validityDays)
	if req.ValidUntil != nil {
		validUntil = *req.ValidUntil
	}

	q := Quotation{
		CustomerID: req.CustomerID,
		QuoteDate:  req.QuoteDate,
		ValidUntil: validUntil,
		Status:     StatusPending,
		Notes:      req.Notes,
	}
	if err := s.appendLines(ctx, &q, req.Lines); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var quotationID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		id, err := repo.Create(ctx, q)
		if err != nil {
			return fmt.Errorf("create quotation: %w", err)
		}
		quotationID = id
		for _, item := range q.Items {
			item.QuotationID = quotationID
			if _, err := repo.InsertLine(ctx, item); err != nil {
				return fmt.Errorf("insert quotation line: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, quotationID)
}

// Update edits a quotation that has not yet produced an order. When lines are
// provided they replace the existing set and every unit price is snapshotted
// afresh from the product catalogue.
func (s *Service) Update(ctx context.Context, id int64, req UpdateQuotationRequest) (*Quotation, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}

	converted, err := s.repo.HasOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check conversion: %w", err)
	}
	if converted {
		return nil, fmt.Errorf("%w: quotation %d is frozen", shared.ErrAlreadyConverted, id)
	}

	next := *existing
	if req.QuoteDate != nil {
		next.QuoteDate = *req.QuoteDate
	}
	if req.ValidUntil != nil {
		next.ValidUntil = *req.ValidUntil
	}
	if req.Notes != nil {
		next.Notes = req.Notes
	}
	if req.Lines != nil {
		next.Items = nil
		next.TotalAmount = 0
		if err := s.appendLines(ctx, &next, *req.Lines); err != nil {
			return nil, err
		}
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		updates := map[string]interface{}{
			"quote_date":  next.QuoteDate,
			"valid_until": next.ValidUntil,
			"notes":       next.Notes,
		}
		if req.Lines != nil {
			updates["total_amount"] = next.TotalAmount
		}
		if err := repo.Update(ctx, id, updates); err != nil {
			return fmt.Errorf("update quotation: %w", err)
		}
		if req.Lines != nil {
			if err := repo.DeleteLines(ctx, id); err != nil {
				return fmt.Errorf("delete quotation lines: %w", err)
			}
			for _, item := range next.Items {
				item.QuotationID = id
				if _, err := repo.InsertLine(ctx, item); err != nil {
					return fmt.Errorf("insert quotation line: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, id)
}

// SetStatus relabels the quotation status. Any status may follow any other;
// repeating the current status succeeds without effect.
func (s *Service) SetStatus(ctx context.Context, id int64, status string) (*Quotation, error) {
	next, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	if err := existing.SetStatus(next); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, fmt.Errorf("update quotation status: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// ExpireOverdue marks Pending quotations whose validity date passed as
// Expired. Returns the number of quotations flipped.
func (s *Service) ExpireOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	return s.repo.ExpireOverdue(ctx, asOf)
}

// Get returns the quotation with its items.
func (s *Service) Get(ctx context.Context, id int64) (*Quotation, error) {
	return s.repo.Get(ctx, id)
}

// List returns quotations matching the filter.
func (s *Service) List(ctx context.Context, req ListQuotationsRequest) ([]QuotationWithCustomer, int, error) {
	return s.repo.List(ctx, req)
}

// appendLines resolves each requested line against the product catalogue and
// stock gate, then folds it into the quotation via the aggregator. Lookups
// run concurrently; items are appended in request order.
func (s *Service) appendLines(ctx context.Context, q *Quotation, lines []CreateLineReq) error {
	type resolved struct {
		unitPrice float64
		available int64
	}
	results := make([]resolved, len(lines))

	g, ctx := errgroup.WithContext(ctx)
	for i, line := range lines {
		g.Go(func() error {
			product, err := s.productRepo.Get(ctx, line.ProductID)
			if err != nil {
				return dependencyErr("product", line.ProductID, err)
			}
			available, err := s.stock.AvailableStock(ctx, line.ProductID)
			if err != nil {
				return fmt.Errorf("stock lookup for product %d: %w", line.ProductID, err)
			}
			results[i] = resolved{unitPrice: product.UnitPrice, available: available}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, line := range lines {
		if err := q.AddItem(line.ProductID, line.Quantity, line.DiscountPercent, results[i].unitPrice, results[i].available); err != nil {
			return err
		}
	}
	return nil
}

func dependencyErr(kind string, id int64, err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("%w: %s %d", shared.ErrDependencyUnavailable, kind, id)
	}
	return fmt.Errorf("verify %s %d: %w", kind, id, err)
}
