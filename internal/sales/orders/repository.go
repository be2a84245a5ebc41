package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solstice-erp/solstice-erp/internal/platform/db"
	"github.com/solstice-erp/solstice-erp/internal/shared"
)

// Repository persists orders and their items.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Order, error)
	GetByQuotationID(ctx context.Context, quotationID int64) (*Order, error)
	List(ctx context.Context, req ListOrdersRequest) ([]OrderWithCustomer, int, error)
	Create(ctx context.Context, o Order) (int64, error)
	InsertLine(ctx context.Context, item Item) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository builds a pgx-backed order repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

func (r *repository) Get(ctx context.Context, id int64) (*Order, error) {
	const query = `
		SELECT id, customer_id, order_date, shipping_address, status, total_amount, quotation_id, notes, created_at, updated_at
		FROM orders
		WHERE id = $1`

	o, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %d", shared.ErrNotFound, id)
		}
		return nil, err
	}

	items, err := r.lines(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *repository) GetByQuotationID(ctx context.Context, quotationID int64) (*Order, error) {
	const query = `
		SELECT id, customer_id, order_date, shipping_address, status, total_amount, quotation_id, notes, created_at, updated_at
		FROM orders
		WHERE quotation_id = $1`

	o, err := scanOrder(r.db.QueryRow(ctx, query, quotationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: order for quotation %d", shared.ErrNotFound, quotationID)
		}
		return nil, err
	}
	return o, nil
}

func (r *repository) lines(ctx context.Context, orderID int64) ([]Item, error) {
	const query = `
		SELECT id, order_id, product_id, quantity, unit_price, discount_percent, line_total, line_order
		FROM order_items
		WHERE order_id = $1
		ORDER BY line_order`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.DiscountPercent, &item.LineTotal, &item.LineOrder,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *repository) List(ctx context.Context, req ListOrdersRequest) ([]OrderWithCustomer, int, error) {
	conditions := []string{"1=1"}
	var args []interface{}
	argPos := 1

	if req.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("o.customer_id = $%d", argPos))
		args = append(args, *req.CustomerID)
		argPos++
	}
	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}
	if req.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("o.order_date >= $%d", argPos))
		args = append(args, *req.DateFrom)
		argPos++
	}
	if req.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("o.order_date <= $%d", argPos))
		args = append(args, *req.DateTo)
		argPos++
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM orders o %s", whereClause)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`
		SELECT o.id, o.customer_id, o.order_date, o.shipping_address, o.status, o.total_amount,
		       o.quotation_id, o.notes, o.created_at, o.updated_at, c.name AS customer_name
		FROM orders o
		JOIN customers c ON o.customer_id = c.id
		%s
		ORDER BY o.order_date DESC, o.id DESC
		LIMIT $%d OFFSET $%d`, whereClause, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []OrderWithCustomer
	for rows.Next() {
		var row OrderWithCustomer
		var quotationID pgtype.Int8
		var notes pgtype.Text
		if err := rows.Scan(
			&row.ID, &row.CustomerID, &row.OrderDate, &row.ShippingAddress, &row.Status,
			&row.TotalAmount, &quotationID, &notes, &row.CreatedAt, &row.UpdatedAt, &row.CustomerName,
		); err != nil {
			return nil, 0, err
		}
		if quotationID.Valid {
			val := quotationID.Int64
			row.QuotationID = &val
		}
		if notes.Valid {
			val := notes.String
			row.Notes = &val
		}
		result = append(result, row)
	}
	return result, total, rows.Err()
}

// Create inserts the order header. The partial unique index on
// orders.quotation_id makes a second conversion of the same quotation fail
// with SQLSTATE 23505, which surfaces as ErrAlreadyConverted.
func (r *repository) Create(ctx context.Context, o Order) (int64, error) {
	const query = `
		INSERT INTO orders (customer_id, order_date, shipping_address, status, total_amount, quotation_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		o.CustomerID,
		pgtype.Date{Time: o.OrderDate, Valid: !o.OrderDate.IsZero()},
		o.ShippingAddress,
		o.Status,
		o.TotalAmount,
		o.QuotationID,
		o.Notes,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && o.QuotationID != nil {
			return 0, fmt.Errorf("%w: quotation %d", shared.ErrAlreadyConverted, *o.QuotationID)
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) InsertLine(ctx context.Context, item Item) (int64, error) {
	const query = `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price, discount_percent, line_total, line_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		item.OrderID, item.ProductID, item.Quantity,
		item.UnitPrice, item.DiscountPercent, item.LineTotal, item.LineOrder,
	).Scan(&id)
	return id, err
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %d", shared.ErrNotFound, id)
	}
	return nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var quotationID pgtype.Int8
	var notes pgtype.Text
	if err := row.Scan(
		&o.ID, &o.CustomerID, &o.OrderDate, &o.ShippingAddress, &o.Status,
		&o.TotalAmount, &quotationID, &notes, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if quotationID.Valid {
		val := quotationID.Int64
		o.QuotationID = &val
	}
	if notes.Valid {
		val := notes.String
		o.Notes = &val
	}
	return &o, nil
}
