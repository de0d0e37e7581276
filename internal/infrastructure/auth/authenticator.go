package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Priyakatariya/smartbackend/internal/core/domain"
)

const defaultTokenTTL = time.Hour

// Authenticator hashes credentials with bcrypt and issues HS256-signed JWTs.
type Authenticator struct {
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthenticator(jwtSecret string, tokenTTL time.Duration) *Authenticator {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &Authenticator{jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (a *Authenticator) HashCredential(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash credential: %w", err)
	}
	return string(hashed), nil
}

func (a *Authenticator) VerifyCredential(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// IssueToken signs a token carrying the user's identity and role claims.
func (a *Authenticator) IssueToken(u *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   u.ID,
		"role":      string(u.Role),
		"user_type": string(u.UserType),
		"exp":       time.Now().Add(a.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(a.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
