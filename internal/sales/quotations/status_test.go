package quotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solstice-erp/solstice-erp/internal/shared"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "APPROVED", "REJECTED", "EXPIRED"} {
		status, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, Status(s), status)
	}

	_, err := ParseStatus("DRAFT")
	assert.ErrorIs(t, err, shared.ErrValidation)
	_, err = ParseStatus("approved")
	assert.ErrorIs(t, err, shared.ErrValidation, "status labels are case sensitive")
}

func TestSetStatusIsFreeForm(t *testing.T) {
	q := draftQuotation()

	// Any status may follow any other, including reversals.
	for _, next := range []Status{StatusApproved, StatusRejected, StatusApproved, StatusExpired, StatusPending} {
		require.NoError(t, q.SetStatus(next))
		assert.Equal(t, next, q.Status)
	}
}

func TestSetStatusIdempotent(t *testing.T) {
	q := draftQuotation()
	require.NoError(t, q.SetStatus(StatusApproved))
	require.NoError(t, q.SetStatus(StatusApproved))
	assert.Equal(t, StatusApproved, q.Status)
}

func TestSetStatusRejectsUnknownLabel(t *testing.T) {
	q := draftQuotation()
	err := q.SetStatus(Status("ARCHIVED"))
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.Equal(t, StatusPending, q.Status)
}
