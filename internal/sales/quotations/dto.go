package quotations

import "time"

// CreateQuotationRequest creates a quotation. Unit prices are not accepted
// from the caller; each line snapshots the product's current price server-side.
type CreateQuotationRequest struct {
	CustomerID int64           `json:"customer_id" validate:"required,gt=0"`
	QuoteDate  time.Time       `json:"quote_date" validate:"required"`
	ValidUntil *time.Time      `json:"valid_until,omitempty"`
	Notes      *string         `json:"notes,omitempty"`
	Lines      []CreateLineReq `json:"lines" validate:"required,min=1,dive"`
}

// CreateLineReq is one requested product line.
type CreateLineReq struct {
	ProductID       int64   `json:"product_id" validate:"required,gt=0"`
	Quantity        int64   `json:"quantity" validate:"required,gte=1"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
}

// UpdateQuotationRequest edits a quotation that has not been converted.
type UpdateQuotationRequest struct {
	QuoteDate  *time.Time       `json:"quote_date,omitempty"`
	ValidUntil *time.Time       `json:"valid_until,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
	Lines      *[]CreateLineReq `json:"lines,omitempty" validate:"omitempty,min=1,dive"`
}

// SetStatusRequest relabels the quotation status.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListQuotationsRequest filters the quotation listing.
type ListQuotationsRequest struct {
	CustomerID *int64     `json:"customer_id,omitempty"`
	Status     *Status    `json:"status,omitempty"`
	DateFrom   *time.Time `json:"date_from,omitempty"`
	DateTo     *time.Time `json:"date_to,omitempty"`
	Limit      int        `json:"limit" validate:"gte=0,lte=1000"`
	Offset     int        `json:"offset" validate:"gte=0"`
}
