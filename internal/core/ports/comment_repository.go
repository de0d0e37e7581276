package ports

import (
	"context"

	"github.com/Priyakatariya/smartbackend/internal/core/domain"
)

// CommentRepository defines persistence operations for listing comments.
type CommentRepository interface {
	Insert(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	// FindByListing returns the listing's comments ordered by createdAt asc.
	FindByListing(ctx context.Context, listingID string) ([]*domain.Comment, error)
	// DeleteByListing removes every comment referencing the listing and
	// returns the number removed. Deleting zero comments is not an error.
	DeleteByListing(ctx context.Context, listingID string) (int64, error)
}
