package orders

import "time"

// ConvertQuotationRequest materialises an order from an approved quotation.
// Items, prices and the total are taken from the quotation, never the caller.
type ConvertQuotationRequest struct {
	QuotationID     int64      `json:"quotation_id" validate:"required,gt=0"`
	OrderDate       *time.Time `json:"order_date,omitempty"`
	ShippingAddress *string    `json:"shipping_address,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

// CreateOrderRequest creates an order directly, without a quotation. As with
// quotations, unit prices are snapshotted server-side from the catalogue.
type CreateOrderRequest struct {
	CustomerID      int64           `json:"customer_id" validate:"required,gt=0"`
	OrderDate       time.Time       `json:"order_date" validate:"required"`
	ShippingAddress *string         `json:"shipping_address,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	Lines           []CreateLineReq `json:"lines" validate:"required,min=1,dive"`
}

// CreateLineReq is one requested product line.
type CreateLineReq struct {
	ProductID       int64   `json:"product_id" validate:"required,gt=0"`
	Quantity        int64   `json:"quantity" validate:"required,gte=1"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
}

// SetStatusRequest relabels the order status.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListOrdersRequest filters the order listing.
type ListOrdersRequest struct {
	CustomerID *int64     `json:"customer_id,omitempty"`
	Status     *Status    `json:"status,omitempty"`
	DateFrom   *time.Time `json:"date_from,omitempty"`
	DateTo     *time.Time `json:"date_to,omitempty"`
	Limit      int        `json:"limit" validate:"gte=0,lte=1000"`
	Offset     int        `json:"offset" validate:"gte=0"`
}
