package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scanmart/scanmart/internal/platform/httpx"
)

// PostgresRepository stores orders in PostgreSQL. CreateOrder wraps the
// header and item inserts in a single transaction.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs an order repository over a pgx pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const orderColumns = `id, user_id, store_id, order_number, total_amount, total_tax, total_savings, total_weight, order_date, status`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.UserID, &o.StoreID, &o.OrderNumber, &o.TotalAmount,
		&o.TotalTax, &o.TotalSavings, &o.TotalWeight, &o.OrderDate, &o.Status)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Order returns the order with the given id.
func (r *PostgresRepository) Order(ctx context.Context, id int64) (*Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("order %d: %w", id, httpx.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// OrderByNumber returns the order with the given order number.
func (r *PostgresRepository) OrderByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("order %q: %w", orderNumber, httpx.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order by number: %w", err)
	}
	return o, nil
}

// OrdersByUser returns all orders attributed to a user, ordered by id.
func (r *PostgresRepository) OrdersByUser(ctx context.Context, userID int64) ([]Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders by user: %w", err)
	}
	defer rows.Close()
	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return out, nil
}

// OrderItems returns the items of an order, ordered by id.
func (r *PostgresRepository) OrderItems(ctx context.Context, orderID int64) ([]Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, order_id, product_id, quantity, price FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}
	return out, nil
}

// CreateOrder inserts the order header and all items in one transaction.
func (r *PostgresRepository) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create order: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (user_id, store_id, order_number, total_amount, total_tax, total_savings, total_weight, order_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		req.UserID, req.StoreID, req.OrderNumber, req.TotalAmount, req.TotalTax,
		req.TotalSavings, req.TotalWeight, req.OrderDate, req.Status).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("order %q: %w", req.OrderNumber, httpx.ErrConflict)
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for _, entry := range req.Items {
		_, err := tx.Exec(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, price) VALUES ($1, $2, $3, $4)`,
			id, entry.ProductID, entry.Quantity, entry.Price)
		if err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create order: %w", err)
	}
	return r.Order(ctx, id)
}
