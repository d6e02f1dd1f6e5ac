package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"community-directory/internal/domain"
	"community-directory/internal/repository"
)

const createListingsTable = `
CREATE TABLE IF NOT EXISTS listings (
	id TEXT PRIMARY KEY,
	category TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	contact TEXT NOT NULL DEFAULT '',
	created_by TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_listings_category ON listings(category);
`

type ListingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) repository.ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createListingsTable); err != nil {
		return fmt.Errorf("create listings table: %w", err)
	}
	return nil
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	now := time.Now().UTC()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO listings (id, category, title, description, location, contact, created_by, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		listing.ID,
		listing.Category,
		listing.Title,
		listing.Description,
		listing.Location,
		listing.Contact,
		listing.CreatedBy,
		listing.CreatedAt,
		listing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, category, title, description, location, contact, created_by, created_at, updated_at
FROM listings
WHERE id = ?`,
		id,
	)
	var listing domain.Listing
	if err := scanListing(row.Scan, &listing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan listing: %w", err)
	}
	return &listing, nil
}

func (r *ListingRepository) ListByCategory(ctx context.Context, category string) ([]domain.Listing, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, category, title, description, location, contact, created_by, created_at, updated_at
FROM listings
WHERE category = ?
ORDER BY created_at DESC`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()
	return collectListings(rows)
}

func (r *ListingRepository) List(ctx context.Context) ([]domain.Listing, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, category, title, description, location, contact, created_by, created_at, updated_at
FROM listings
ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()
	return collectListings(rows)
}

func collectListings(rows *sql.Rows) ([]domain.Listing, error) {
	var listings []domain.Listing
	for rows.Next() {
		var listing domain.Listing
		if err := scanListing(rows.Scan, &listing); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return listings, nil
}

func scanListing(scan func(dest ...any) error, listing *domain.Listing) error {
	return scan(
		&listing.ID,
		&listing.Category,
		&listing.Title,
		&listing.Description,
		&listing.Location,
		&listing.Contact,
		&listing.CreatedBy,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
}
