package ports

import (
	"context"
	"time"

	"github.com/Priyakatariya/smartbackend/internal/core/domain"
)

// CommentEntry is a single comment supplied inside a listing update.
type CommentEntry struct {
	UserID    string
	Text      string
	CreatedAt *time.Time // defaults to now when nil
}

// CreateListingInput carries all data needed to create a listing.
// Coordinates are pointers so that "missing" is distinguishable from 0.
type CreateListingInput struct {
	UserID        string
	WasteType     string
	Quantity      string
	Unit          string
	Description   string
	Latitude      *float64
	Longitude     *float64
	Address       string
	City          string
	State         string
	ZipCode       string
	ItemType      string
	WasteCategory string
	ImageURL      string
	Price         *float64
}

// UpdateListingInput is a partial patch. Nil pointer fields are absent from
// the patch. The collector assignment is tri-state (absent / set / cleared),
// so it carries an explicit presence flag: CollectorSet with an empty
// CollectorID clears the assignment.
type UpdateListingInput struct {
	CollectorSet bool
	CollectorID  string

	Status *string

	WasteType     *string
	Quantity      *string
	Unit          *string
	Description   *string
	Latitude      *float64
	Longitude     *float64
	Address       *string
	City          *string
	State         *string
	ZipCode       *string
	ItemType      *string
	WasteCategory *string
	ImageURL      *string
	Price         *float64

	Comments []CommentEntry
}

// ListingFilter carries the raw, client-supplied filter values. Values that
// do not parse (unknown status, malformed ids) are silently ignored rather
// than rejected.
type ListingFilter struct {
	Status      string
	OwnerID     string
	CollectorID string
}

// AuthorView is the comment author projection {displayName, name, email}.
type AuthorView struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email"`
}

// CommentView is a comment hydrated with its author.
type CommentView struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"createdAt"`
	Author    *AuthorView `json:"author,omitempty"`
}

// ProfileView is the public user projection used for listing owners and
// collectors. It never carries credential material.
type ProfileView struct {
	ID           string          `json:"id"`
	DisplayName  string          `json:"displayName,omitempty"`
	Name         string          `json:"name,omitempty"`
	Email        string          `json:"email"`
	UserType     domain.UserType `json:"userType"`
	Role         domain.UserRole `json:"role"`
	Latitude     *float64        `json:"latitude,omitempty"`
	Longitude    *float64        `json:"longitude,omitempty"`
	Address      string          `json:"address,omitempty"`
	City         string          `json:"city,omitempty"`
	State        string          `json:"state,omitempty"`
	ZipCode      string          `json:"zipCode,omitempty"`
	ContactPhone string          `json:"contactPhone,omitempty"`
	ContactEmail string          `json:"contactEmail,omitempty"`
}

// ListingView is the fully hydrated listing returned by every read path:
// owner and collector expanded to profiles, comments expanded with authors.
type ListingView struct {
	ID            string               `json:"id"`
	WasteType     string               `json:"wasteType"`
	Quantity      string               `json:"quantity"`
	Unit          string               `json:"unit,omitempty"`
	Description   string               `json:"description,omitempty"`
	Status        domain.WasteStatus   `json:"status"`
	Latitude      float64              `json:"latitude"`
	Longitude     float64              `json:"longitude"`
	Address       string               `json:"address,omitempty"`
	City          string               `json:"city,omitempty"`
	State         string               `json:"state,omitempty"`
	ZipCode       string               `json:"zipCode,omitempty"`
	ItemType      domain.ItemType      `json:"itemType"`
	WasteCategory domain.WasteCategory `json:"wasteCategory,omitempty"`
	ImageURL      string               `json:"imageUrl,omitempty"`
	Price         *float64             `json:"price,omitempty"`
	Owner         *ProfileView         `json:"user,omitempty"`
	Collector     *ProfileView         `json:"assignedCollector,omitempty"`
	Comments      []CommentView        `json:"comments"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
	CompletedAt   *time.Time           `json:"completedAt,omitempty"`
}

// ListingService is the listing lifecycle engine plus its query layer.
type ListingService interface {
	Create(ctx context.Context, in CreateListingInput) (*ListingView, error)
	Get(ctx context.Context, id string) (*ListingView, error)
	Find(ctx context.Context, f ListingFilter) ([]*ListingView, error)
	Update(ctx context.Context, id string, in UpdateListingInput) (*ListingView, error)
	Delete(ctx context.Context, id string) error
}

// CommentManager creates and retrieves comments scoped to a listing.
type CommentManager interface {
	// AppendComments is a best-effort batch: invalid entries are skipped with
	// a warning and do not fail the batch. Returns the number appended.
	AppendComments(ctx context.Context, listingID string, entries []CommentEntry) int
	// CommentsFor returns the listing's thread, oldest first, authors hydrated.
	CommentsFor(ctx context.Context, listingID string) ([]CommentView, error)
	// DeleteAllFor removes the whole thread; a no-op when the thread is empty.
	DeleteAllFor(ctx context.Context, listingID string) error
}
