package ports

import (
	"context"

	"github.com/agors/historiography/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	// Login accepts either the username or the email as identifier.
	Login(ctx context.Context, identifier, password string) (*domain.Account, error)
	VerifyAdminKey(key string) error
}

// AccountService is the admin-facing account management surface.
type AccountService interface {
	List(ctx context.Context) ([]domain.Account, error)
	Delete(ctx context.Context, username string) error
}
