package inventory

import (
	"errors"
	"time"
)

// StockLevel summarises on-hand quantity per product. One record per product;
// products with no record have zero available stock.
type StockLevel struct {
	ProductID    int64     `json:"product_id"`
	Quantity     int64     `json:"quantity"`
	ReorderLevel int64     `json:"reorder_level"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Movement records a manual stock adjustment for traceability.
type Movement struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	ProductID int64     `json:"product_id"`
	Delta     int64     `json:"delta"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// AdjustmentInput describes a manual stock adjustment. Quotation and order
// creation never adjust stock; a quotation is a proposal, not a reservation.
type AdjustmentInput struct {
	ProductID int64  `json:"product_id"`
	Delta     int64  `json:"delta"`
	Note      string `json:"note"`
}

// ErrNegativeStock triggered when an adjustment would drive quantity below zero.
var ErrNegativeStock = errors.New("inventory: negative stock not allowed")

// ErrInvalidDelta indicates a zero adjustment.
var ErrInvalidDelta = errors.New("inventory: adjustment delta must be non zero")
