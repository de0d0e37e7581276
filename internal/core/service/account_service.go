package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Priyakatariya/smartbackend/internal/core/domain"
	"github.com/Priyakatariya/smartbackend/internal/core/ports"
)

// AccountService implements registration, sign-in, and the account directory.
type AccountService struct {
	users  ports.UserRepository
	auth   ports.Authenticator
	logger zerolog.Logger
}

func NewAccountService(users ports.UserRepository, auth ports.Authenticator, logger zerolog.Logger) *AccountService {
	return &AccountService{users: users, auth: auth, logger: logger}
}

// Register creates a new account. The access role is derived from the user
// type and never taken from the client; the password is hashed behind the
// Authenticator contract before anything is persisted.
func (s *AccountService) Register(ctx context.Context, in ports.RegisterAccountInput) (*domain.User, string, error) {
	if in.Email == "" || in.Password == "" || in.DisplayName == "" || in.UserType == "" {
		return nil, "", fmt.Errorf("%w: email, password, displayName and userType are required", domain.ErrInvalidInput)
	}
	userType, ok := domain.ParseUserType(in.UserType)
	if !ok {
		return nil, "", fmt.Errorf("%w: invalid userType: %s", domain.ErrInvalidInput, in.UserType)
	}

	if existing, err := s.users.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, "", domain.ErrEmailExists
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", fmt.Errorf("register: %w", err)
	}

	hash, err := s.auth.HashCredential(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("register: hash credential: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.DisplayName,
		DisplayName:  in.DisplayName,
		UserType:     userType,
		Role:         domain.RoleFor(userType),
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Address:      in.Address,
		City:         in.City,
		State:        in.State,
		ZipCode:      in.ZipCode,
		ContactPhone: in.ContactPhone,
		ContactEmail: in.ContactEmail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.auth.IssueToken(created)
	if err != nil {
		return nil, "", fmt.Errorf("register: issue token: %w", err)
	}

	s.logger.Info().Str("user_id", created.ID).Str("user_type", string(created.UserType)).Msg("account registered")
	return created, token, nil
}

// SignIn verifies the credentials and issues a token. Unknown emails and bad
// passwords are indistinguishable to the caller.
func (s *AccountService) SignIn(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("sign in: %w", err)
	}

	if !s.auth.VerifyCredential(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("sign in: issue token: %w", err)
	}
	return token, user, nil
}

// ListAccounts returns every account in store-native order. The password hash
// never leaves the domain struct's json:"-" projection.
func (s *AccountService) ListAccounts(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}
