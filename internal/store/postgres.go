package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scanmart/scanmart/internal/platform/httpx"
)

// PostgresRepository stores retail locations in PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a store repository over a pgx pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Store returns the store with the given id.
func (r *PostgresRepository) Store(ctx context.Context, id int64) (*Store, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, name, branch, qr_code, layout FROM stores WHERE id = $1`, id)
	s, err := scanStore(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("store %d: %w", id, httpx.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	return s, nil
}

// StoreByQRCode returns the store with the given scan code.
func (r *PostgresRepository) StoreByQRCode(ctx context.Context, qrCode string) (*Store, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, name, branch, qr_code, layout FROM stores WHERE qr_code = $1`, qrCode)
	s, err := scanStore(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("store qr %q: %w", qrCode, httpx.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get store by qr: %w", err)
	}
	return s, nil
}

// AllStores returns every store, ordered by id.
func (r *PostgresRepository) AllStores(ctx context.Context) ([]Store, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, branch, qr_code, layout FROM stores ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var out []Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stores: %w", err)
	}
	return out, nil
}

// CreateStore inserts a store and returns it with its assigned id.
func (r *PostgresRepository) CreateStore(ctx context.Context, req CreateStoreRequest) (*Store, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO stores (name, branch, qr_code, layout) VALUES ($1, $2, $3, $4) RETURNING id`,
		req.Name, req.Branch, req.QRCode, req.LayoutJSON)
	var id int64
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("store qr %q: %w", req.QRCode, httpx.ErrConflict)
		}
		return nil, fmt.Errorf("insert store: %w", err)
	}
	return r.Store(ctx, id)
}

func scanStore(row pgx.Row) (*Store, error) {
	var s Store
	if err := row.Scan(&s.ID, &s.Name, &s.Branch, &s.QRCode, &s.LayoutJSON); err != nil {
		return nil, err
	}
	return &s, nil
}
