package repository

import (
	"context"
	"errors"

	"community-directory/internal/domain"
)

var (
	// ErrNotFound is returned when no record matches the lookup key.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate is returned when an insert violates a unique key.
	ErrDuplicate = errors.New("repository: already exists")
)

// UserRepository defines persistence operations for User records. Create is
// insert-if-absent: inserting an email that already exists fails with
// ErrDuplicate instead of overwriting.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
