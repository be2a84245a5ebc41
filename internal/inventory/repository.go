package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solstice-erp/solstice-erp/internal/platform/db"
	"github.com/solstice-erp/solstice-erp/internal/shared"
)

// Repository persists stock levels and movements.
type Repository interface {
	GetLevel(ctx context.Context, productID int64) (StockLevel, error)
	ListLevels(ctx context.Context) ([]StockLevel, error)
	Adjust(ctx context.Context, productID, delta int64, code, note string) (StockLevel, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a pgx-backed inventory repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) GetLevel(ctx context.Context, productID int64) (StockLevel, error) {
	const query = `
		SELECT product_id, quantity, reorder_level, updated_at
		FROM stock_levels
		WHERE product_id = $1`

	var level StockLevel
	err := r.pool.QueryRow(ctx, query, productID).Scan(
		&level.ProductID, &level.Quantity, &level.ReorderLevel, &level.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StockLevel{}, fmt.Errorf("%w: stock level for product %d", shared.ErrNotFound, productID)
		}
		return StockLevel{}, err
	}
	return level, nil
}

func (r *repository) ListLevels(ctx context.Context) ([]StockLevel, error) {
	const query = `
		SELECT product_id, quantity, reorder_level, updated_at
		FROM stock_levels
		ORDER BY product_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []StockLevel
	for rows.Next() {
		var level StockLevel
		if err := rows.Scan(&level.ProductID, &level.Quantity, &level.ReorderLevel, &level.UpdatedAt); err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, rows.Err()
}

func (r *repository) Adjust(ctx context.Context, productID, delta int64, code, note string) (StockLevel, error) {
	var level StockLevel
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		const upsert = `
			INSERT INTO stock_levels (product_id, quantity)
			VALUES ($1, $2)
			ON CONFLICT (product_id)
			DO UPDATE SET quantity = stock_levels.quantity + $2, updated_at = NOW()
			RETURNING product_id, quantity, reorder_level, updated_at`
		if err := tx.QueryRow(ctx, upsert, productID, delta).Scan(
			&level.ProductID, &level.Quantity, &level.ReorderLevel, &level.UpdatedAt,
		); err != nil {
			return err
		}
		if level.Quantity < 0 {
			return ErrNegativeStock
		}

		const insertMovement = `
			INSERT INTO stock_movements (code, product_id, delta, note)
			VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, insertMovement, code, productID, delta, note); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return StockLevel{}, err
	}
	return level, nil
}
