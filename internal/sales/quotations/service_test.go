package quotations

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solstice-erp/solstice-erp/internal/masterdata/products"
	"github.com/solstice-erp/solstice-erp/internal/sales/customers"
	"github.com/solstice-erp/solstice-erp/internal/shared"
)

type mockRepository struct {
	quotations map[int64]*Quotation
	hasOrder   map[int64]bool
	nextID     int64
	expired    int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		quotations: make(map[int64]*Quotation),
		hasOrder:   make(map[int64]bool),
		nextID:     1,
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, m)
}

func (m *mockRepository) Get(_ context.Context, id int64) (*Quotation, error) {
	q, ok := m.quotations[id]
	if !ok {
		return nil, fmt.Errorf("%w: quotation %d", shared.ErrNotFound, id)
	}
	copied := *q
	copied.Items = append([]Item(nil), q.Items...)
	return &copied, nil
}

func (m *mockRepository) List(_ context.Context, _ ListQuotationsRequest) ([]QuotationWithCustomer, int, error) {
	return nil, 0, nil
}

func (m *mockRepository) Create(_ context.Context, q Quotation) (int64, error) {
	q.ID = m.nextID
	q.Items = nil
	m.nextID++
	m.quotations[q.ID] = &q
	return q.ID, nil
}

func (m *mockRepository) Update(_ context.Context, id int64, updates map[string]interface{}) error {
	q, ok := m.quotations[id]
	if !ok {
		return fmt.Errorf("%w: quotation %d", shared.ErrNotFound, id)
	}
	if v, ok := updates["quote_date"]; ok {
		q.QuoteDate = v.(time.Time)
	}
	if v, ok := updates["valid_until"]; ok {
		q.ValidUntil = v.(time.Time)
	}
	if v, ok := updates["notes"]; ok {
		q.Notes, _ = v.(*string)
	}
	if v, ok := updates["total_amount"]; ok {
		q.TotalAmount = v.(float64)
	}
	return nil
}

func (m *mockRepository) InsertLine(_ context.Context, item Item) (int64, error) {
	q, ok := m.quotations[item.QuotationID]
	if !ok {
		return 0, fmt.Errorf("%w: quotation %d", shared.ErrNotFound, item.QuotationID)
	}
	item.ID = int64(len(q.Items) + 1)
	q.Items = append(q.Items, item)
	return item.ID, nil
}

func (m *mockRepository) DeleteLines(_ context.Context, quotationID int64) error {
	if q, ok := m.quotations[quotationID]; ok {
		q.Items = nil
	}
	return nil
}

func (m *mockRepository) UpdateStatus(_ context.Context, id int64, status Status) error {
	q, ok := m.quotations[id]
	if !ok {
		return fmt.Errorf("%w: quotation %d", shared.ErrNotFound, id)
	}
	q.Status = status
	return nil
}

func (m *mockRepository) HasOrder(_ context.Context, quotationID int64) (bool, error) {
	return m.hasOrder[quotationID], nil
}

func (m *mockRepository) ExpireOverdue(_ context.Context, asOf time.Time) (int64, error) {
	var n int64
	for _, q := range m.quotations {
		if q.Status == StatusPending && q.ValidUntil.Before(asOf) {
			q.Status = StatusExpired
			n++
		}
	}
	m.expired = n
	return n, nil
}

type mockCustomerRepo struct {
	customers map[int64]*customers.Customer
}

func (m *mockCustomerRepo) Get(_ context.Context, id int64) (*customers.Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return nil, fmt.Errorf("%w: customer %d", shared.ErrNotFound, id)
	}
	return c, nil
}

func (m *mockCustomerRepo) List(_ context.Context, _ customers.ListCustomersRequest) ([]customers.Customer, int, error) {
	return nil, 0, nil
}

func (m *mockCustomerRepo) Create(_ context.Context, _ customers.Customer) (int64, error) {
	return 0, nil
}

type mockProductRepo struct {
	products map[int64]products.Product
}

func (m *mockProductRepo) Get(_ context.Context, id int64) (products.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return products.Product{}, fmt.Errorf("%w: product %d", shared.ErrNotFound, id)
	}
	return p, nil
}

func (m *mockProductRepo) List(_ context.Context, _ products.ListFilters) ([]products.Product, int, error) {
	return nil, 0, nil
}

func (m *mockProductRepo) Create(_ context.Context, p products.Product) (products.Product, error) {
	return p, nil
}

func (m *mockProductRepo) Update(_ context.Context, _ int64, _ products.Product) error {
	return nil
}

type mockStockGate struct {
	stock map[int64]int64
}

func (m *mockStockGate) AvailableStock(_ context.Context, productID int64) (int64, error) {
	return m.stock[productID], nil
}

func newFixture() (*Service, *mockRepository) {
	repo := newMockRepository()
	customerRepo := &mockCustomerRepo{customers: map[int64]*customers.Customer{
		1: {ID: 1, Name: "Meridian Logistics", Country: "NL"},
	}}
	productRepo := &mockProductRepo{products: map[int64]products.Product{
		10: {ID: 10, Code: "PMP-010", Name: "Slurry Pump", UnitPrice: 100, IsActive: true},
		20: {ID: 20, Code: "VLV-020", Name: "Gate Valve", UnitPrice: 25, IsActive: true},
	}}
	stock := &mockStockGate{stock: map[int64]int64{10: 50, 20: 3}}
	return NewService(repo, customerRepo, productRepo, stock, 0), repo
}

func TestCreateSnapshotsCataloguePrices(t *testing.T) {
	svc, _ := newFixture()

	q, err := svc.Create(context.Background(), CreateQuotationRequest{
		CustomerID: 1,
		QuoteDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Lines: []CreateLineReq{
			{ProductID: 10, Quantity: 2, DiscountPercent: 10},
			{ProductID: 20, Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, q.Status)
	assert.Equal(t, 230.0, q.TotalAmount)
	require.Len(t, q.Items, 2)
	assert.Equal(t, 100.0, q.Items[0].UnitPrice, "price taken from the catalogue, not the caller")
}

func TestCreateDefaultsValidity(t *testing.T) {
	svc, _ := newFixture()

	quoteDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	q, err := svc.Create(context.Background(), CreateQuotationRequest{
		CustomerID: 1,
		QuoteDate:  quoteDate,
		Lines:      []CreateLineReq{{ProductID: 10, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, quoteDate.AddDate(0, 0, DefaultValidityDays), q.ValidUntil)
}

func TestCreateUnknownCustomer(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.Create(context.Background(), CreateQuotationRequest{
		CustomerID: 42,
		QuoteDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Lines:      []CreateLineReq{{ProductID: 10, Quantity: 1}},
	})
	assert.ErrorIs(t, err, shared.ErrDependencyUnavailable)
}

func TestCreateUnknownProduct(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.Create(context.Background(), CreateQuotationRequest{
		CustomerID: 1,
		QuoteDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Lines:      []CreateLineReq{{ProductID: 99, Quantity: 1}},
	})
	assert.ErrorIs(t, err, shared.ErrDependencyUnavailable)
}

func TestCreateInsufficientStock(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.Create(context.Background(), CreateQuotationRequest{
		CustomerID: 1,
		QuoteDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Lines:      []CreateLineReq{{ProductID: 20, Quantity: 5}},
	})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
}

func TestUpdateRebuildsLinesWithFreshSnapshots(t *testing.T) {
	svc, _ := newFixture()

	q, err := svc.Create(context.Background(), CreateQuotationRequest{
		CustomerID: 1,
		QuoteDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Lines:      []CreateLineReq{{ProductID: 10, Quantity: 1}},
	})
	require.NoError(t, err)

	lines := []CreateLineReq{{ProductID: 20, Quantity: 2}}
	updated, err := svc.Update(context.Background(), q.ID, UpdateQuotationRequest{Lines: &lines})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, int64(20), updated.Items[0].ProductID)
	assert.Equal(t, 25.0, updated.Items[0].UnitPrice)
	assert.Equal(t, 50.0, updated.TotalAmount)
}

func TestUpdateFrozenAfterConversion(t *testing.T) {
	svc, repo := newFixture()

	q, err := svc.Create(context.Background(), CreateQuotationRequest{
		CustomerID: 1,
		QuoteDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Lines:      []CreateLineReq{{ProductID: 10, Quantity: 1}},
	})
	require.NoError(t, err)
	repo.hasOrder[q.ID] = true

	notes := "revised terms"
	_, err = svc.Update(context.Background(), q.ID, UpdateQuotationRequest{Notes: &notes})
	assert.ErrorIs(t, err, shared.ErrAlreadyConverted)
}

func TestServiceSetStatus(t *testing.T) {
	svc, _ := newFixture()

	q, err := svc.Create(context.Background(), CreateQuotationRequest{
		CustomerID: 1,
		QuoteDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Lines:      []CreateLineReq{{ProductID: 10, Quantity: 1}},
	})
	require.NoError(t, err)

	q, err = svc.SetStatus(context.Background(), q.ID, "APPROVED")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, q.Status)

	// Reversals and repeats are allowed.
	q, err = svc.SetStatus(context.Background(), q.ID, "REJECTED")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, q.Status)
	_, err = svc.SetStatus(context.Background(), q.ID, "REJECTED")
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), q.ID, "DRAFT")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestExpireOverdue(t *testing.T) {
	svc, repo := newFixture()

	past := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	repo.quotations[1] = &Quotation{ID: 1, Status: StatusPending, ValidUntil: past}
	repo.quotations[2] = &Quotation{ID: 2, Status: StatusApproved, ValidUntil: past}
	repo.quotations[3] = &Quotation{ID: 3, Status: StatusPending, ValidUntil: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)}

	n, err := svc.ExpireOverdue(context.Background(), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, StatusExpired, repo.quotations[1].Status)
	assert.Equal(t, StatusApproved, repo.quotations[2].Status, "only pending quotations expire")
	assert.Equal(t, StatusPending, repo.quotations[3].Status)
}
