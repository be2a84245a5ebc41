package quotations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solstice-erp/solstice-erp/internal/platform/db"
	"github.com/solstice-erp/solstice-erp/internal/shared"
)

// Repository persists quotations and their items.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Quotation, error)
	List(ctx context.Context, req ListQuotationsRequest) ([]QuotationWithCustomer, int, error)
	Create(ctx context.Context, q Quotation) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	InsertLine(ctx context.Context, item Item) (int64, error)
	DeleteLines(ctx context.Context, quotationID int64) error
	UpdateStatus(ctx context.Context, id int64, status Status) error
	HasOrder(ctx context.Context, quotationID int64) (bool, error)
	ExpireOverdue(ctx context.Context, asOf time.Time) (int64, error)
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

// NewRepository builds a pgx-backed quotation repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

func (r *repository) Get(ctx context.Context, id int64) (*Quotation, error) {
	const query = `
		SELECT id, customer_id, quote_date, valid_until, status, total_amount, notes, created_at, updated_at
		FROM quotations
		WHERE id = $1`

	q, err := scanQuotation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: quotation %d", shared.ErrNotFound, id)
		}
		return nil, err
	}

	items, err := r.lines(ctx, id)
	if err != nil {
		return nil, err
	}
	q.Items = items
	return q, nil
}

func (r *repository) lines(ctx context.Context, quotationID int64) ([]Item, error) {
	const query = `
		SELECT id, quotation_id, product_id, quantity, unit_price, discount_percent, line_total, line_order
		FROM quotation_items
		WHERE quotation_id = $1
		ORDER BY line_order`

	rows, err := r.db.Query(ctx, query, quotationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.ID, &item.QuotationID, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.DiscountPercent, &item.LineTotal, &item.LineOrder,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *repository) List(ctx context.Context, req ListQuotationsRequest) ([]QuotationWithCustomer, int, error) {
	conditions := []string{"1=1"}
	var args []interface{}
	argPos := 1

	if req.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("q.customer_id = $%d", argPos))
		args = append(args, *req.CustomerID)
		argPos++
	}
	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("q.status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}
	if req.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("q.quote_date >= $%d", argPos))
		args = append(args, *req.DateFrom)
		argPos++
	}
	if req.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("q.quote_date <= $%d", argPos))
		args = append(args, *req.DateTo)
		argPos++
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM quotations q %s", whereClause)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`
		SELECT q.id, q.customer_id, q.quote_date, q.valid_until, q.status, q.total_amount,
		       q.notes, q.created_at, q.updated_at, c.name AS customer_name
		FROM quotations q
		JOIN customers c ON q.customer_id = c.id
		%s
		ORDER BY q.quote_date DESC, q.id DESC
		LIMIT $%d OFFSET $%d`, whereClause, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []QuotationWithCustomer
	for rows.Next() {
		var row QuotationWithCustomer
		var notes pgtype.Text
		if err := rows.Scan(
			&row.ID, &row.CustomerID, &row.QuoteDate, &row.ValidUntil, &row.Status,
			&row.TotalAmount, &notes, &row.CreatedAt, &row.UpdatedAt, &row.CustomerName,
		); err != nil {
			return nil, 0, err
		}
		if notes.Valid {
			val := notes.String
			row.Notes = &val
		}
		result = append(result, row)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, q Quotation) (int64, error) {
	const query = `
		INSERT INTO quotations (customer_id, quote_date, valid_until, status, total_amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		q.CustomerID,
		pgtype.Date{Time: q.QuoteDate, Valid: !q.QuoteDate.IsZero()},
		pgtype.Date{Time: q.ValidUntil, Valid: !q.ValidUntil.IsZero()},
		q.Status,
		q.TotalAmount,
		q.Notes,
	).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE quotations SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"quote_date", "valid_until", "notes", "total_amount"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *repository) InsertLine(ctx context.Context, item Item) (int64, error) {
	const query = `
		INSERT INTO quotation_items (quotation_id, product_id, quantity, unit_price, discount_percent, line_total, line_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		item.QuotationID, item.ProductID, item.Quantity,
		item.UnitPrice, item.DiscountPercent, item.LineTotal, item.LineOrder,
	).Scan(&id)
	return id, err
}

func (r *repository) DeleteLines(ctx context.Context, quotationID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM quotation_items WHERE quotation_id = $1`, quotationID)
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE quotations SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: quotation %d", shared.ErrNotFound, id)
	}
	return nil
}

func (r *repository) HasOrder(ctx context.Context, quotationID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE quotation_id = $1)`, quotationID).Scan(&exists)
	return exists, err
}

func (r *repository) ExpireOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE quotations
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND valid_until < $3`,
		StatusExpired, StatusPending, asOf)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanQuotation(row pgx.Row) (*Quotation, error) {
	var q Quotation
	var notes pgtype.Text
	if err := row.Scan(
		&q.ID, &q.CustomerID, &q.QuoteDate, &q.ValidUntil, &q.Status,
		&q.TotalAmount, &notes, &q.CreatedAt, &q.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if notes.Valid {
		val := notes.String
		q.Notes = &val
	}
	return &q, nil
}
