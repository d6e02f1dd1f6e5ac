package repository

import (
	"context"

	"community-directory/internal/domain"
)

// ListingRepository defines persistence operations for directory entries.
type ListingRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Listing, error)
	List(ctx context.Context) ([]domain.Listing, error)
}
