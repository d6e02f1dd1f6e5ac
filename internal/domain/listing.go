package domain

import "time"

// Listing is a single directory entry. Entries across categories share one
// schema; category-specific validation lives with the callers that need it.
type Listing struct {
	ID          string
	Category    string
	Title       string
	Description string
	Location    string
	Contact     string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
