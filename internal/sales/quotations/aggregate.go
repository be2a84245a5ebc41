package quotations

import (
	"fmt"

	"github.com/solstice-erp/solstice-erp/internal/sales/pricing"
	"github.com/solstice-erp/solstice-erp/internal/shared"
)

// AddItem appends a product line to the quotation. unitPrice is the product's
// current price (snapshotted onto the item) and available is the stock
// ceiling reported by the inventory gate. On any error the item list is left
// unchanged.
func (q *Quotation) AddItem(productID, quantity int64, discountPercent, unitPrice float64, available int64) error {
	if productID <= 0 {
		return fmt.Errorf("%w: product is required", shared.ErrValidation)
	}
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", shared.ErrValidation)
	}
	if discountPercent < 0 || discountPercent > 100 {
		return fmt.Errorf("%w: discount must be between 0 and 100", shared.ErrValidation)
	}
	if unitPrice < 0 {
		return fmt.Errorf("%w: unit price must not be negative", shared.ErrValidation)
	}
	for _, item := range q.Items {
		if item.ProductID == productID {
			return fmt.Errorf("%w: product %d", shared.ErrDuplicateProduct, productID)
		}
	}
	if quantity > available {
		return fmt.Errorf("%w: product %d has %d available, %d requested",
			shared.ErrInsufficientStock, productID, available, quantity)
	}

	q.Items = append(q.Items, Item{
		QuotationID:     q.ID,
		ProductID:       productID,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		LineTotal:       pricing.LineTotal(float64(quantity), unitPrice, discountPercent),
		LineOrder:       len(q.Items) + 1,
	})
	q.recalculate()
	return nil
}

// RemoveItem drops the item at index and recomputes the total. Removing the
// last item leaves an empty quotation, which is valid but blocked from being
// saved by Validate.
func (q *Quotation) RemoveItem(index int) error {
	if index < 0 || index >= len(q.Items) {
		return fmt.Errorf("%w: item index %d out of range", shared.ErrValidation, index)
	}
	q.Items = append(q.Items[:index], q.Items[index+1:]...)
	for i := range q.Items {
		q.Items[i].LineOrder = i + 1
	}
	q.recalculate()
	return nil
}

// Validate checks the quotation header and item set before persistence.
func (q *Quotation) Validate() error {
	if q.CustomerID <= 0 {
		return fmt.Errorf("%w: customer is required", shared.ErrValidation)
	}
	if q.QuoteDate.IsZero() {
		return fmt.Errorf("%w: quote date is required", shared.ErrValidation)
	}
	if q.ValidUntil.IsZero() {
		return fmt.Errorf("%w: validity date is required", shared.ErrValidation)
	}
	if q.ValidUntil.Before(q.QuoteDate) {
		return fmt.Errorf("%w: validity date must not precede the quote date", shared.ErrValidation)
	}
	countable := 0
	for _, item := range q.Items {
		if item.ProductID > 0 && item.LineTotal > 0 {
			countable++
		}
	}
	if countable == 0 {
		return fmt.Errorf("%w: at least one priced item is required", shared.ErrValidation)
	}
	return nil
}

// recalculate derives the quotation total as the unrounded sum of line totals.
func (q *Quotation) recalculate() {
	var total float64
	for _, item := range q.Items {
		total += item.LineTotal
	}
	q.TotalAmount = total
}
