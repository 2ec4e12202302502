package domain

// SessionRole is the access level of the running session. It differs from Role:
// an Admin account is only SessionAdmin once the admin key has been accepted.
type SessionRole int

const (
	SessionAnonymous SessionRole = iota
	SessionUser
	SessionAdmin
)

func (r SessionRole) String() string {
	switch r {
	case SessionUser:
		return "user"
	case SessionAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}
