package user

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Service provides user account operations.
type Service struct {
	repo Repository
}

// NewService constructs a user service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// User retrieves a user by id.
func (s *Service) User(ctx context.Context, id int64) (*User, error) {
	return s.repo.User(ctx, id)
}

// UserByUsername retrieves a user by username.
func (s *Service) UserByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.UserByUsername(ctx, username)
}

// CreateUser stores a new user with a bcrypt-hashed password.
func (s *Service) CreateUser(ctx context.Context, username, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.CreateUser(ctx, username, string(hash))
}

// Authenticate checks a username/password pair against the stored hash.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.UserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("user %q: invalid credentials", username)
	}
	return u, nil
}
