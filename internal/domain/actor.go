package domain

import "strings"

// Role of the authenticated caller
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// Actor is the already-authenticated caller identity
type Actor struct {
	Role  Role
	Email string
}

// IsAdmin returns true for admin actors
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns reports whether the actor's email matches email (case-insensitive)
func (a Actor) Owns(email string) bool {
	return NormalizeEmail(a.Email) == NormalizeEmail(email)
}

// CanActFor reports whether the actor may act on behalf of the customer with email
func (a Actor) CanActFor(email string) bool {
	return a.IsAdmin() || a.Owns(email)
}

// NormalizeEmail lower-cases and trims an email for comparison and storage
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
