package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solstice-erp/solstice-erp/internal/shared"
)

// Repository persists customer records.
type Repository interface {
	Get(ctx context.Context, id int64) (*Customer, error)
	List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error)
	Create(ctx context.Context, c Customer) (int64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a pgx-backed customer repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const customerColumns = `id, name, contact_name, email, phone, address_line1, address_line2, city, postal_code, country, is_active, created_at, updated_at`

func (r *repository) Get(ctx context.Context, id int64) (*Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE id = $1`, customerColumns)

	var c Customer
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.ContactName, &c.Email, &c.Phone,
		&c.AddressLine1, &c.AddressLine2, &c.City, &c.PostalCode, &c.Country,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: customer %d", shared.ErrNotFound, id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE 1=1`, customerColumns)
	countQuery := `SELECT COUNT(*) FROM customers WHERE 1=1`
	var args []interface{}
	argPos := 0

	if req.Search != "" {
		argPos++
		clause := fmt.Sprintf(" AND name ILIKE $%d", argPos)
		query += clause
		countQuery += clause
		args = append(args, "%"+req.Search+"%")
	}
	if req.IsActive != nil {
		argPos++
		clause := fmt.Sprintf(" AND is_active = $%d", argPos)
		query += clause
		countQuery += clause
		args = append(args, *req.IsActive)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argPos+1, argPos+2)
	args = append(args, limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(
			&c.ID, &c.Name, &c.ContactName, &c.Email, &c.Phone,
			&c.AddressLine1, &c.AddressLine2, &c.City, &c.PostalCode, &c.Country,
			&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, c)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, c Customer) (int64, error) {
	const query = `
		INSERT INTO customers (name, contact_name, email, phone, address_line1, address_line2, city, postal_code, country, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		c.Name, c.ContactName, c.Email, c.Phone,
		c.AddressLine1, c.AddressLine2, c.City, c.PostalCode, c.Country, c.IsActive,
	).Scan(&id)
	return id, err
}
