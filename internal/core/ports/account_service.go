package ports

import (
	"context"

	"github.com/Priyakatariya/smartbackend/internal/core/domain"
)

// RegisterAccountInput carries all data needed to create a new account.
// Email, Password, DisplayName and UserType are required; the rest is an
// optional profile.
type RegisterAccountInput struct {
	Email        string
	Password     string
	DisplayName  string
	UserType     string
	Latitude     *float64
	Longitude    *float64
	Address      string
	City         string
	State        string
	ZipCode      string
	ContactPhone string
	ContactEmail string
}

// AccountService owns user accounts: registration with role derivation,
// sign-in, and the account directory listing.
type AccountService interface {
	// Register creates the account and returns it together with a signed
	// token for the new user.
	Register(ctx context.Context, in RegisterAccountInput) (*domain.User, string, error)
	// SignIn verifies credentials and returns a signed token plus the user.
	SignIn(ctx context.Context, email, password string) (string, *domain.User, error)
	// ListAccounts returns every account, credential material excluded.
	ListAccounts(ctx context.Context) ([]*domain.User, error)
}
