package ports

import (
	"context"

	"github.com/Priyakatariya/smartbackend/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user. A duplicate email surfaces as
	// domain.ErrEmailExists (enforced by a unique index on email).
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users that exist for the given ids, keyed by id.
	// Missing ids are simply absent from the map.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	// List returns all users in store-native order.
	List(ctx context.Context) ([]*domain.User, error)
}
