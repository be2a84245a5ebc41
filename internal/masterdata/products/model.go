package products

import "time"

// Product represents a catalogue entry. UnitPrice is the snapshot source for
// quotation and order lines; changing it never touches existing documents.
type Product struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Model         *string   `json:"model,omitempty"`
	Specification *string   `json:"specification,omitempty"`
	Certification *string   `json:"certification,omitempty"`
	UnitPrice     float64   `json:"unit_price"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ListFilters narrows the product listing.
type ListFilters struct {
	Search   string
	IsActive *bool
	Limit    int
	Offset   int
}
