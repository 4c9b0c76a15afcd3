package auth

import (
	"errors"
	"strings"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	MethodPassword = "password"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Principal struct {
	UserID int64
	Email  string
	Role   string // "admin" or "user"
	Method string // "password" now; "oidc" later
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// ValidRole reports whether s names a role this application knows about.
// Stored roles outside this set are treated as unknown, never as admin.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleUser
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
