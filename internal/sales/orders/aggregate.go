package orders

import (
	"fmt"

	"github.com/solstice-erp/solstice-erp/internal/sales/pricing"
	"github.com/solstice-erp/solstice-erp/internal/shared"
)

// AddItem appends a product line to a directly-entered order. The same gate
// applies as for quotations: no duplicate products, quantity within available
// stock. On any error the item list is left unchanged.
func (o *Order) AddItem(productID, quantity int64, discountPercent, unitPrice float64, available int64) error {
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
	for _, item := range o.Items {
		if item.ProductID == productID {
			return fmt.Errorf("%w: product %d", shared.ErrDuplicateProduct, productID)
		}
	}
	if quantity > available {
		return fmt.Errorf("%w: product %d has %d available, %d requested",
			shared.ErrInsufficientStock, productID, available, quantity)
	}

	o.Items = append(o.Items, Item{
		OrderID:         o.ID,
		ProductID:       productID,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		LineTotal:       pricing.LineTotal(float64(quantity), unitPrice, discountPercent),
		LineOrder:       len(o.Items) + 1,
	})
	o.recalculate()
	return nil
}

// Validate checks the order header and item set before persistence.
func (o *Order) Validate() error {
	if o.CustomerID <= 0 {
		return fmt.Errorf("%w: customer is required", shared.ErrValidation)
	}
	if o.OrderDate.IsZero() {
		return fmt.Errorf("%w: order date is required", shared.ErrValidation)
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", shared.ErrValidation)
	}
	return nil
}

// recalculate derives the order total as the unrounded sum of line totals.
func (o *Order) recalculate() {
	var total float64
	for _, item := range o.Items {
		total += item.LineTotal
	}
	o.TotalAmount = total
}
