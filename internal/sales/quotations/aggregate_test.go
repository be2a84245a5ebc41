package quotations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solstice-erp/solstice-erp/internal/shared"
)

func draftQuotation() Quotation {
	return Quotation{
		CustomerID: 1,
		QuoteDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Status:     StatusPending,
	}
}

func TestAddItemComputesRunningTotal(t *testing.T) {
	q := draftQuotation()

	// 2 x 100 at 10% discount plus 2 x 25 undiscounted.
	require.NoError(t, q.AddItem(10, 2, 10, 100, 50))
	require.NoError(t, q.AddItem(20, 2, 0, 25, 50))

	assert.Equal(t, 230.0, q.TotalAmount)
	require.Len(t, q.Items, 2)
	assert.Equal(t, 180.0, q.Items[0].LineTotal)
	assert.Equal(t, 50.0, q.Items[1].LineTotal)
	assert.Equal(t, 1, q.Items[0].LineOrder)
	assert.Equal(t, 2, q.Items[1].LineOrder)
}

func TestAddItemRejectsDuplicateProduct(t *testing.T) {
	q := draftQuotation()
	require.NoError(t, q.AddItem(10, 2, 0, 100, 50))

	err := q.AddItem(10, 1, 0, 100, 50)
	assert.ErrorIs(t, err, shared.ErrDuplicateProduct)
	assert.Len(t, q.Items, 1, "failed add must leave the item list unchanged")
	assert.Equal(t, 200.0, q.TotalAmount)
}

func TestAddItemGatesOnAvailableStock(t *testing.T) {
	q := draftQuotation()

	err := q.AddItem(10, 5, 0, 100, 3)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Empty(t, q.Items)

	require.NoError(t, q.AddItem(10, 3, 0, 100, 3), "quantity equal to available passes")
}

func TestAddItemValidation(t *testing.T) {
	tests := []struct {
		name            string
		productID       int64
		quantity        int64
		discountPercent float64
		unitPrice       float64
	}{
		{"missing product", 0, 1, 0, 100},
		{"zero quantity", 10, 0, 0, 100},
		{"negative quantity", 10, -1, 0, 100},
		{"discount below range", 10, 1, -5, 100},
		{"discount above range", 10, 1, 101, 100},
		{"negative unit price", 10, 1, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := draftQuotation()
			err := q.AddItem(tt.productID, tt.quantity, tt.discountPercent, tt.unitPrice, 100)
			assert.ErrorIs(t, err, shared.ErrValidation)
			assert.Empty(t, q.Items)
		})
	}
}

func TestRemoveItemRecomputesAndRenumbers(t *testing.T) {
	q := draftQuotation()
	require.NoError(t, q.AddItem(10, 2, 10, 100, 50))
	require.NoError(t, q.AddItem(20, 2, 0, 25, 50))

	require.NoError(t, q.RemoveItem(0))
	assert.Equal(t, 50.0, q.TotalAmount)
	require.Len(t, q.Items, 1)
	assert.Equal(t, 1, q.Items[0].LineOrder)

	require.NoError(t, q.RemoveItem(0))
	assert.Zero(t, q.TotalAmount)
	assert.Empty(t, q.Items)
}

func TestRemoveItemOutOfRange(t *testing.T) {
	q := draftQuotation()
	require.NoError(t, q.AddItem(10, 1, 0, 100, 50))

	assert.ErrorIs(t, q.RemoveItem(-1), shared.ErrValidation)
	assert.ErrorIs(t, q.RemoveItem(1), shared.ErrValidation)
}

func TestValidate(t *testing.T) {
	t.Run("valid quotation passes", func(t *testing.T) {
		q := draftQuotation()
		require.NoError(t, q.AddItem(10, 1, 0, 100, 50))
		assert.NoError(t, q.Validate())
	})

	t.Run("no items", func(t *testing.T) {
		q := draftQuotation()
		assert.ErrorIs(t, q.Validate(), shared.ErrValidation)
	})

	t.Run("missing customer", func(t *testing.T) {
		q := draftQuotation()
		require.NoError(t, q.AddItem(10, 1, 0, 100, 50))
		q.CustomerID = 0
		assert.ErrorIs(t, q.Validate(), shared.ErrValidation)
	})

	t.Run("validity precedes quote date", func(t *testing.T) {
		q := draftQuotation()
		require.NoError(t, q.AddItem(10, 1, 0, 100, 50))
		q.ValidUntil = q.QuoteDate.AddDate(0, 0, -1)
		assert.ErrorIs(t, q.Validate(), shared.ErrValidation)
	})

	t.Run("free items alone do not count", func(t *testing.T) {
		q := draftQuotation()
		require.NoError(t, q.AddItem(10, 1, 100, 100, 50))
		assert.ErrorIs(t, q.Validate(), shared.ErrValidation)
	})
}

func TestRoundedLeavesAggregateUntouched(t *testing.T) {
	q := draftQuotation()
	require.NoError(t, q.AddItem(10, 3, 0, 33.335, 50))

	rounded := q.Rounded()
	assert.Equal(t, 100.01, rounded.TotalAmount)
	assert.InDelta(t, 100.005, q.TotalAmount, 1e-9, "source stays unrounded")
}
