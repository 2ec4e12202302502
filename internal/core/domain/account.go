package domain

import (
	"errors"
	"strings"
)

// Role is the access class stored on an account.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// Roles lists the roles offered by the registration form, in display order.
var Roles = []Role{RoleUser, RoleAdmin}

// ParseRole maps a stored or selected role name to a Role. Matching ignores case
// so hand-edited files ("admin", "USER") still load.
func ParseRole(s string) (Role, bool) {
	switch {
	case strings.EqualFold(s, string(RoleUser)):
		return RoleUser, true
	case strings.EqualFold(s, string(RoleAdmin)):
		return RoleAdmin, true
	}
	return "", false
}

// DefaultAdminKey is the shared second factor asked of Admin accounts after the
// password check. It is a toy gate, compared verbatim and never rotated, and can
// be overridden through configuration.
const DefaultAdminKey = "0000"

// Account models a registered principal.
type Account struct {
	Username     string `json:"-"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Role         Role   `json:"role"`
}

// IsAdmin reports whether the account carries the Admin role.
func (a Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidAdminKey    = errors.New("invalid admin key")
	ErrAdminProtected     = errors.New("admin accounts cannot be deleted")
)

