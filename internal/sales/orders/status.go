package orders

import (
	"fmt"

	"github.com/solstice-erp/solstice-erp/internal/shared"
)

// ParseStatus validates a status string coming off the wire.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: unknown order status %q", shared.ErrValidation, s)
}

// SetStatus relabels the order. As with quotations the workflow is free-form
// so staff can correct records; repeating the current status is a no-op.
func (o *Order) SetStatus(next Status) error {
	if _, err := ParseStatus(string(next)); err != nil {
		return err
	}
	o.Status = next
	return nil
}
