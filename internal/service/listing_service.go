package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"community-directory/internal/domain"
	"community-directory/internal/repository"
)

var (
	// ErrListingInvalid indicates required listing fields were empty.
	ErrListingInvalid = errors.New("listing: category and title are required")
	// ErrListingNotFound is returned when no listing matches the id.
	ErrListingNotFound = errors.New("listing: not found")
)

// ListingService coordinates directory-entry operations backed by the
// listing repository.
type ListingService interface {
	Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error)
	Get(ctx context.Context, id string) (*domain.Listing, error)
	List(ctx context.Context, category string) ([]domain.Listing, error)
}

type listingService struct {
	listings repository.ListingRepository
}

func NewListingService(listings repository.ListingRepository) ListingService {
	return &listingService{listings: listings}
}

func (s *listingService) Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	listing.Category = strings.TrimSpace(listing.Category)
	listing.Title = strings.TrimSpace(listing.Title)
	if listing.Category == "" || listing.Title == "" {
		return nil, ErrListingInvalid
	}

	listing.ID = uuid.NewString()
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *listingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return listing, nil
}

func (s *listingService) List(ctx context.Context, category string) ([]domain.Listing, error) {
	if category = strings.TrimSpace(category); category != "" {
		return s.listings.ListByCategory(ctx, category)
	}
	return s.listings.List(ctx)
}
