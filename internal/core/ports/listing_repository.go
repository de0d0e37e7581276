package ports

import (
	"context"

	"github.com/Priyakatariya/smartbackend/internal/core/domain"
)

// ListingQuery carries the already-validated filter dimensions for a listing
// search. Zero values mean "no filter on this dimension".
type ListingQuery struct {
	Status      domain.WasteStatus
	OwnerID     string
	CollectorID string
}

// ListingRepository defines persistence operations for waste listings.
type ListingRepository interface {
	Insert(ctx context.Context, l *domain.Listing) (*domain.Listing, error)
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	// Find returns listings matching the query, newest first (createdAt desc).
	Find(ctx context.Context, q ListingQuery) ([]*domain.Listing, error)
	// Update persists the full listing document (last write wins; the service
	// layer performs the read-modify-write).
	Update(ctx context.Context, l *domain.Listing) error
	// Delete removes the listing, returning domain.ErrListingNotFound when no
	// document matched.
	Delete(ctx context.Context, id string) error
}
