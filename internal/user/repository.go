package user

import "context"

// Repository abstracts user persistence.
type Repository interface {
	User(ctx context.Context, id int64) (*User, error)
	UserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)
}
