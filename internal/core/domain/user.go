package domain

import (
	"strings"
	"time"
)

// UserType is the account type chosen at signup.
type UserType string

const (
	UserTypeGenerator UserType = "GENERATOR"
	UserTypeCollector UserType = "COLLECTOR"
	UserTypeAdmin     UserType = "ADMIN"
)

// ParseUserType matches s case-insensitively against the known account types.
func ParseUserType(s string) (UserType, bool) {
	switch UserType(strings.ToUpper(strings.TrimSpace(s))) {
	case UserTypeGenerator:
		return UserTypeGenerator, true
	case UserTypeCollector:
		return UserTypeCollector, true
	case UserTypeAdmin:
		return UserTypeAdmin, true
	}
	return "", false
}

// UserRole is the access role derived from the account type. It is never
// supplied by a client.
type UserRole string

const (
	RoleLister    UserRole = "LISTER"
	RoleCollector UserRole = "COLLECTOR"
	RoleAdmin     UserRole = "ADMIN"
)

// RoleFor derives the access role from an account type:
// ADMIN→ADMIN, COLLECTOR→COLLECTOR, anything else→LISTER.
func RoleFor(t UserType) UserRole {
	switch t {
	case UserTypeAdmin:
		return RoleAdmin
	case UserTypeCollector:
		return RoleCollector
	default:
		return RoleLister
	}
}

// User models an account in the system. PasswordHash is owned by the
// authentication layer and is never included in API projections.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name,omitempty"`
	DisplayName  string    `json:"displayName,omitempty"`
	UserType     UserType  `json:"userType"`
	Role         UserRole  `json:"role"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	ZipCode      string    `json:"zipCode,omitempty"`
	ContactPhone string    `json:"contactPhone,omitempty"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
