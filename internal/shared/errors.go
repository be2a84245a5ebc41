package shared

import "errors"

// Error kinds surfaced by the sales engine. All are recoverable at the call
// site: the caller re-prompts with the offending field or item.
var (
	// ErrValidation indicates a missing or invalid required field.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateProduct indicates the product is already present in the item set.
	ErrDuplicateProduct = errors.New("product already present in item set")
	// ErrInsufficientStock indicates the requested quantity exceeds available stock.
	ErrInsufficientStock = errors.New("requested quantity exceeds available stock")
	// ErrAlreadyConverted indicates the quotation already produced an order.
	ErrAlreadyConverted = errors.New("quotation already converted to an order")
	// ErrDependencyUnavailable indicates a required lookup could not be resolved.
	ErrDependencyUnavailable = errors.New("required lookup unavailable")
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
)
