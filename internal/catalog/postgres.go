package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scanmart/scanmart/internal/platform/httpx"
)

// PostgresRepository stores products in PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a product repository over a pgx pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const productColumns = `id, name, description, price, COALESCE(price_per_unit, ''), COALESCE(unit, ''),
	weight, image_url, COALESCE(discount, 0), category, barcode`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.PricePerUnit, &p.Unit,
		&p.Weight, &p.ImageURL, &p.Discount, &p.Category, &p.Barcode)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Product returns the product with the given id.
func (r *PostgresRepository) Product(ctx context.Context, id int64) (*Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", id, httpx.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ProductByBarcode returns the product with the given barcode.
func (r *PostgresRepository) ProductByBarcode(ctx context.Context, barcode string) (*Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("product barcode %q: %w", barcode, httpx.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product by barcode: %w", err)
	}
	return p, nil
}

// ProductsByCategory returns all products in a category, ordered by id.
func (r *PostgresRepository) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products WHERE category = $1 ORDER BY id`, category)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// AllProducts returns every product, ordered by id.
func (r *PostgresRepository) AllProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// CreateProduct inserts a product and returns it with its assigned id.
func (r *PostgresRepository) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO products (name, description, price, price_per_unit, unit, weight, image_url, discount, category, barcode)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10)
		 RETURNING id`,
		req.Name, req.Description, req.Price, req.PricePerUnit, req.Unit,
		req.Weight, req.ImageURL, req.Discount, req.Category, req.Barcode)
	var id int64
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("product barcode %q: %w", req.Barcode, httpx.ErrConflict)
		}
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return r.Product(ctx, id)
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return out, nil
}
