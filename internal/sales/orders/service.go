package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/solstice-erp/solstice-erp/internal/masterdata/products"
	"github.com/solstice-erp/solstice-erp/internal/sales/customers"
	"github.com/solstice-erp/solstice-erp/internal/sales/quotations"
	"github.com/solstice-erp/solstice-erp/internal/shared"
)

// StockGate reports how many units of a product may still be ordered.
type StockGate interface {
	AvailableStock(ctx context.Context, productID int64) (int64, error)
}

// QuotationSource looks up the quotation an order materialises from.
type QuotationSource interface {
	Get(ctx context.Context, id int64) (*quotations.Quotation, error)
}

// Service coordinates order operations.
type Service struct {
	repo         Repository
	quotations   QuotationSource
	customerRepo customers.Repository
	productRepo  products.Repository
	stock        StockGate
}

// NewService builds an order service.
func NewService(repo Repository, source QuotationSource, customerRepo customers.Repository, productRepo products.Repository, stock StockGate) *Service {
	return &Service{
		repo:         repo,
		quotations:   source,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		stock:        stock,
	}
}

// ConvertQuotation materialises an order from an approved quotation. Items,
// snapshot prices and the total are copied from the quotation unchanged; only
// the order date and shipping address may be supplied by the caller. Each
// quotation converts at most once, backed by a unique index on the order's
// quotation reference.
func (s *Service) ConvertQuotation(ctx context.Context, req ConvertQuotationRequest) (*Order, error) {
	quotation, err := s.quotations.Get(ctx, req.QuotationID)
	if err != nil {
		return nil, fmt.Errorf("get quotation: %w", err)
	}

	// The conversion check runs before the status check: a converted quotation
	// reports already-converted whatever its current status, since the free
	// relabel machine may have moved it after the order was created. The unique
	// index still backstops concurrent conversions.
	if _, err := s.repo.GetByQuotationID(ctx, req.QuotationID); err == nil {
		return nil, fmt.Errorf("%w: quotation %d", shared.ErrAlreadyConverted, req.QuotationID)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("check conversion: %w", err)
	}

	if quotation.Status != quotations.StatusApproved {
		return nil, fmt.Errorf("%w: quotation %d is %s, only approved quotations convert",
			shared.ErrValidation, req.QuotationID, quotation.Status)
	}

	customer, err := s.customerRepo.Get(ctx, quotation.CustomerID)
	if err != nil {
		return nil, dependencyErr("customer", quotation.CustomerID, err)
	}

	shippingAddress := customer.ShippingAddress()
	if req.ShippingAddress != nil {
		shippingAddress = *req.ShippingAddress
	}
	orderDate := truncateToDay(time.Now())
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	quotationID := req.QuotationID
	order := Order{
		CustomerID:      quotation.CustomerID,
		OrderDate:       orderDate,
		ShippingAddress: shippingAddress,
		Status:          StatusPending,
		TotalAmount:     quotation.TotalAmount,
		QuotationID:     &quotationID,
		Notes:           req.Notes,
	}
	for _, line := range quotation.Items {
		order.Items = append(order.Items, Item{
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			LineTotal:       line.LineTotal,
			LineOrder:       line.LineOrder,
		})
	}

	return s.persist(ctx, order)
}

// Create enters an order directly. The same line invariants apply as for
// quotations: server-side price snapshots, no duplicate products, quantities
// gated on available stock.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	customer, err := s.customerRepo.Get(ctx, req.CustomerID)
	if err != nil {
		return nil, dependencyErr("customer", req.CustomerID, err)
	}

	shippingAddress := customer.ShippingAddress()
	if req.ShippingAddress != nil {
		shippingAddress = *req.ShippingAddress
	}

	order := Order{
		CustomerID:      req.CustomerID,
		OrderDate:       req.OrderDate,
		ShippingAddress: shippingAddress,
		Status:          StatusPending,
		Notes:           req.Notes,
	}
	for _, line := range req.Lines {
		product, err := s.productRepo.Get(ctx, line.ProductID)
		if err != nil {
			return nil, dependencyErr("product", line.ProductID, err)
		}
		available, err := s.stock.AvailableStock(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("stock lookup for product %d: %w", line.ProductID, err)
		}
		if err := order.AddItem(line.ProductID, line.Quantity, line.DiscountPercent, product.UnitPrice, available); err != nil {
			return nil, err
		}
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	return s.persist(ctx, order)
}

// SetStatus relabels the order status. Any status may follow any other;
// repeating the current status succeeds without effect.
func (s *Service) SetStatus(ctx context.Context, id int64, status string) (*Order, error) {
	next, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := existing.SetStatus(next); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Get returns the order with its items.
func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.repo.Get(ctx, id)
}

// List returns orders matching the filter.
func (s *Service) List(ctx context.Context, req ListOrdersRequest) ([]OrderWithCustomer, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) persist(ctx context.Context, order Order) (*Order, error) {
	var orderID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		id, err := repo.Create(ctx, order)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		orderID = id
		for _, item := range order.Items {
			item.OrderID = orderID
			if _, err := repo.InsertLine(ctx, item); err != nil {
				return fmt.Errorf("insert order line: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, orderID)
}

func dependencyErr(kind string, id int64, err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("%w: %s %d", shared.ErrDependencyUnavailable, kind, id)
	}
	return fmt.Errorf("verify %s %d: %w", kind, id, err)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
