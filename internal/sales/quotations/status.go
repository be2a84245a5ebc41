package quotations

import (
	"fmt"

	"github.com/solstice-erp/solstice-erp/internal/shared"
)

// ParseStatus validates a status string coming off the wire.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusExpired:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: unknown quotation status %q", shared.ErrValidation, s)
}

// SetStatus relabels the quotation. The workflow is deliberately free-form:
// staff may move a quotation between any two statuses to correct records, and
// setting the current status again is a successful no-op. The restriction that
// a converted quotation cannot produce another order is enforced at the order
// boundary, not here.
func (q *Quotation) SetStatus(next Status) error {
	if _, err := ParseStatus(string(next)); err != nil {
		return err
	}
	q.Status = next
	return nil
}
