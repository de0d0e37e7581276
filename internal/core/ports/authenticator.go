package ports

import "github.com/Priyakatariya/smartbackend/internal/core/domain"

// Authenticator is the credential and token contract consumed by the account
// service. Hashing and token mechanics live behind this interface so the core
// never sees bcrypt or JWT directly.
type Authenticator interface {
	HashCredential(plain string) (string, error)
	VerifyCredential(plain, hashed string) bool
	IssueToken(u *domain.User) (string, error)
}
