package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scanmart/scanmart/internal/platform/httpx"
)

// PostgresRepository stores users in PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a user repository over a pgx pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// User returns the user with the given id.
func (r *PostgresRepository) User(ctx context.Context, id int64) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `SELECT id, username, password FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, httpx.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// UserByUsername returns the user with the given username.
func (r *PostgresRepository) UserByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `SELECT id, username, password FROM users WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, httpx.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a user and returns it with its assigned id.
func (r *PostgresRepository) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id`,
		username, passwordHash).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("user %q: %w", username, httpx.ErrConflict)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return r.User(ctx, id)
}
