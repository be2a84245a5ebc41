// Package pricing holds the pure line-item arithmetic shared by quotations
// and orders.
package pricing

import "math"

// LineTotal computes a line's monetary amount from quantity, unit price and
// discount percentage. Inputs are expected to be pre-clamped by the caller
// (quantity >= 0, price >= 0, discount in [0,100]); the result is unrounded so
// aggregation does not compound rounding error.
func LineTotal(quantity, unitPrice, discountPercent float64) float64 {
	gross := quantity * unitPrice
	return gross - gross*(discountPercent/100)
}

// DiscountAmount returns the absolute discount for a line.
func DiscountAmount(quantity, unitPrice, discountPercent float64) float64 {
	return quantity * unitPrice * (discountPercent / 100)
}

// RoundCurrency rounds a monetary amount to two decimal places. Applied at
// the display/serialization boundary only, never before aggregation.
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}
