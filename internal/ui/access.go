package ui

import "github.com/agors/historiography/internal/core/domain"

var (
	anyone     = []domain.SessionRole{domain.SessionAnonymous, domain.SessionUser, domain.SessionAdmin}
	signedIn   = []domain.SessionRole{domain.SessionUser, domain.SessionAdmin}
	adminsOnly = []domain.SessionRole{domain.SessionAdmin}
)

// access lists, per state, the session roles allowed to enter it.
var access = map[State][]domain.SessionRole{
	StateMainMenu:        anyone,
	StateRules:           anyone,
	StateRegistration:    anyone,
	StateLogin:           anyone,
	StateAdminKey:        {domain.SessionAnonymous},
	StateExit:            anyone,
	StateUserMenu:        {domain.SessionUser},
	StatePlacesList:      signedIn,
	StatePlaceDetail:     signedIn,
	StateReviewsMenu:     {domain.SessionUser},
	StateReviewList:      signedIn,
	StateReviewPlacePick: signedIn,
	StateReviewAdd:       signedIn,
	StateSettings:        signedIn,
	StateConfirm:         signedIn,
	StateAdminMenu:       adminsOnly,
	StatePlaceActions:    adminsOnly,
	StatePlaceAdd:        adminsOnly,
	StatePlaceEdit:       adminsOnly,
	StateUserList:        adminsOnly,
}

// allowed reports whether s may enter state. The admin key screen also needs
// an Admin account waiting for its second factor.
func allowed(state State, s Session) bool {
	if state == StateAdminKey && s.pending == nil {
		return false
	}
	for _, r := range access[state] {
		if r == s.Role {
			return true
		}
	}
	return false
}
