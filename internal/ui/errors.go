package ui

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/agors/historiography/internal/core/domain"
	"github.com/agors/historiography/internal/core/validation"
)

// feedbackMessage maps an error from a service call to the text shown to the
// user. Unknown errors are logged and shown generically.
func feedbackMessage(err error, log zerolog.Logger, state State) string {
	var fe *validation.FieldError
	if errors.As(err, &fe) {
		return fe.Reason
	}

	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		return "username already taken"
	case errors.Is(err, domain.ErrEmailTaken):
		return "email already registered"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid credentials"
	case errors.Is(err, domain.ErrInvalidAdminKey):
		return "invalid admin key"
	case errors.Is(err, domain.ErrAdminProtected):
		return "admin accounts cannot be deleted"
	case errors.Is(err, domain.ErrForbidden):
		return "access denied"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account not found"
	case errors.Is(err, domain.ErrPlaceNotFound):
		return "place not found"
	case errors.Is(err, domain.ErrReviewNotFound):
		return "review not found"
	case errors.Is(err, domain.ErrStorage):
		log.Error().Err(err).Str("screen", state.String()).Msg("storage failure")
		return "could not save changes, nothing was written"
	}

	log.Error().
		Err(err).
		Str("screen", state.String()).
		Msg("unhandled error")

	return "unexpected error"
}
