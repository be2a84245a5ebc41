package quotations

import (
	"time"

	"github.com/solstice-erp/solstice-erp/internal/sales/pricing"
)

// Status labels a quotation's position in the approval workflow.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusExpired  Status = "EXPIRED"
)

// DefaultValidityDays is applied when a create request omits valid_until.
const DefaultValidityDays = 30

// Quotation is a priced, non-binding proposal to a customer.
type Quotation struct {
	ID          int64     `json:"id" db:"id"`
	CustomerID  int64     `json:"customer_id" db:"customer_id"`
	QuoteDate   time.Time `json:"quote_date" db:"quote_date"`
	ValidUntil  time.Time `json:"valid_until" db:"valid_until"`
	Status      Status    `json:"status" db:"status"`
	TotalAmount float64   `json:"total_amount" db:"total_amount"`
	Notes       *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	Items       []Item    `json:"items,omitempty" db:"-"`
}

// Item is one product line within a quotation. UnitPrice is a snapshot taken
// from the product at add-time; later price changes do not touch it.
type Item struct {
	ID              int64   `json:"id" db:"id"`
	QuotationID     int64   `json:"quotation_id" db:"quotation_id"`
	ProductID       int64   `json:"product_id" db:"product_id"`
	Quantity        int64   `json:"quantity" db:"quantity"`
	UnitPrice       float64 `json:"unit_price" db:"unit_price"`
	DiscountPercent float64 `json:"discount_percent" db:"discount_percent"`
	LineTotal       float64 `json:"line_total" db:"line_total"`
	LineOrder       int     `json:"line_order" db:"line_order"`
}

// Rounded returns a display copy with monetary fields rounded to currency
// precision. Aggregation always runs on the unrounded values.
func (q Quotation) Rounded() Quotation {
	out := q
	out.Items = make([]Item, len(q.Items))
	for i, item := range q.Items {
		item.LineTotal = roundCurrency(item.LineTotal)
		item.UnitPrice = roundCurrency(item.UnitPrice)
		out.Items[i] = item
	}
	out.TotalAmount = roundCurrency(q.TotalAmount)
	return out
}

func roundCurrency(v float64) float64 { return pricing.RoundCurrency(v) }

// QuotationWithCustomer decorates a quotation row for listings.
type QuotationWithCustomer struct {
	Quotation
	CustomerName string `json:"customer_name" db:"customer_name"`
}
