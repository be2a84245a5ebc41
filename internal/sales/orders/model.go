package orders

import (
	"time"

	"github.com/solstice-erp/solstice-erp/internal/sales/pricing"
)

// Status labels an order's position in the fulfilment workflow.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// Order is a binding commitment to deliver goods, either materialised from an
// approved quotation or entered directly.
type Order struct {
	ID              int64     `json:"id" db:"id"`
	CustomerID      int64     `json:"customer_id" db:"customer_id"`
	OrderDate       time.Time `json:"order_date" db:"order_date"`
	ShippingAddress string    `json:"shipping_address" db:"shipping_address"`
	Status          Status    `json:"status" db:"status"`
	TotalAmount     float64   `json:"total_amount" db:"total_amount"`
	QuotationID     *int64    `json:"quotation_id,omitempty" db:"quotation_id"`
	Notes           *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
	Items           []Item    `json:"items,omitempty" db:"-"`
}

// Item is one product line within an order. When the order is materialised
// from a quotation the line is copied verbatim, snapshot price included.
type Item struct {
	ID              int64   `json:"id" db:"id"`
	OrderID         int64   `json:"order_id" db:"order_id"`
	ProductID       int64   `json:"product_id" db:"product_id"`
	Quantity        int64   `json:"quantity" db:"quantity"`
	UnitPrice       float64 `json:"unit_price" db:"unit_price"`
	DiscountPercent float64 `json:"discount_percent" db:"discount_percent"`
	LineTotal       float64 `json:"line_total" db:"line_total"`
	LineOrder       int     `json:"line_order" db:"line_order"`
}

// Rounded returns a display copy with monetary fields rounded to currency
// precision. Aggregation always runs on the unrounded values.
func (o Order) Rounded() Order {
	out := o
	out.Items = make([]Item, len(o.Items))
	for i, item := range o.Items {
		item.LineTotal = pricing.RoundCurrency(item.LineTotal)
		item.UnitPrice = pricing.RoundCurrency(item.UnitPrice)
		out.Items[i] = item
	}
	out.TotalAmount = pricing.RoundCurrency(o.TotalAmount)
	return out
}

// OrderWithCustomer decorates an order row for listings.
type OrderWithCustomer struct {
	Order
	CustomerName string `json:"customer_name" db:"customer_name"`
}
