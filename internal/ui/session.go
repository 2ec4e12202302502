package ui

import "github.com/agors/historiography/internal/core/domain"

// Session is the identity of the running process.
type Session struct {
	Principal *domain.Account
	Role      domain.SessionRole

	// pending is an Admin account whose password was accepted but whose admin
	// key has not been entered yet. The session stays anonymous meanwhile.
	pending *domain.Account
}

// Username returns the principal's username, or "" when anonymous.
func (s Session) Username() string {
	if s.Principal == nil {
		return ""
	}
	return s.Principal.Username
}

func (s *Session) signIn(account *domain.Account, role domain.SessionRole) {
	s.Principal = account
	s.Role = role
	s.pending = nil
}

func (s *Session) reset() {
	*s = Session{}
}
