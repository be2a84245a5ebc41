package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solstice-erp/solstice-erp/internal/shared"
)

type mockRepository struct {
	levels    map[int64]StockLevel
	movements []Movement
	getErr    error
	adjustErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{levels: make(map[int64]StockLevel)}
}

func (m *mockRepository) GetLevel(_ context.Context, productID int64) (StockLevel, error) {
	if m.getErr != nil {
		return StockLevel{}, m.getErr
	}
	level, ok := m.levels[productID]
	if !ok {
		return StockLevel{}, fmt.Errorf("%w: stock level for product %d", shared.ErrNotFound, productID)
	}
	return level, nil
}

func (m *mockRepository) ListLevels(_ context.Context) ([]StockLevel, error) {
	var out []StockLevel
	for _, level := range m.levels {
		out = append(out, level)
	}
	return out, nil
}

func (m *mockRepository) Adjust(_ context.Context, productID, delta int64, code, note string) (StockLevel, error) {
	if m.adjustErr != nil {
		return StockLevel{}, m.adjustErr
	}
	level := m.levels[productID]
	level.ProductID = productID
	level.Quantity += delta
	if level.Quantity < 0 {
		return StockLevel{}, ErrNegativeStock
	}
	level.UpdatedAt = time.Now()
	m.levels[productID] = level
	m.movements = append(m.movements, Movement{Code: code, ProductID: productID, Delta: delta, Note: note})
	return level, nil
}

func TestAvailableStock(t *testing.T) {
	repo := newMockRepository()
	repo.levels[7] = StockLevel{ProductID: 7, Quantity: 12}
	svc := NewService(repo, nil)

	qty, err := svc.AvailableStock(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(12), qty)
}

func TestAvailableStockMissingRecordIsZero(t *testing.T) {
	svc := NewService(newMockRepository(), nil)

	qty, err := svc.AvailableStock(context.Background(), 99)
	require.NoError(t, err)
	assert.Zero(t, qty)
}

func TestAvailableStockPropagatesRepoError(t *testing.T) {
	repo := newMockRepository()
	repo.getErr = errors.New("connection reset")
	svc := NewService(repo, nil)

	_, err := svc.AvailableStock(context.Background(), 7)
	require.Error(t, err)
}

func TestAvailableStockRejectsInvalidProduct(t *testing.T) {
	svc := NewService(newMockRepository(), nil)

	_, err := svc.AvailableStock(context.Background(), 0)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestAdjustRecordsMovement(t *testing.T) {
	repo := newMockRepository()
	repo.levels[3] = StockLevel{ProductID: 3, Quantity: 10}
	svc := NewService(repo, nil)

	level, err := svc.Adjust(context.Background(), AdjustmentInput{ProductID: 3, Delta: -4, Note: "damaged pallet"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), level.Quantity)

	require.Len(t, repo.movements, 1)
	assert.True(t, strings.HasPrefix(repo.movements[0].Code, "ADJ-"))
	assert.Equal(t, int64(-4), repo.movements[0].Delta)
}

func TestAdjustRejectsZeroDelta(t *testing.T) {
	svc := NewService(newMockRepository(), nil)

	_, err := svc.Adjust(context.Background(), AdjustmentInput{ProductID: 3, Delta: 0})
	assert.ErrorIs(t, err, ErrInvalidDelta)
}

func TestAdjustRejectsNegativeResult(t *testing.T) {
	repo := newMockRepository()
	repo.levels[3] = StockLevel{ProductID: 3, Quantity: 2}
	svc := NewService(repo, nil)

	_, err := svc.Adjust(context.Background(), AdjustmentInput{ProductID: 3, Delta: -5})
	assert.ErrorIs(t, err, ErrNegativeStock)
}
