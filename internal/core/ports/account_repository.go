package ports

import (
	"context"

	"github.com/agors/historiography/internal/core/domain"
)

// AccountRepository persists accounts. Implementations own username and email
// uniqueness: Add reports domain.ErrUsernameTaken or domain.ErrEmailTaken.
type AccountRepository interface {
	All(ctx context.Context) ([]domain.Account, error)
	// FindBy returns the first account the predicate accepts, or
	// domain.ErrAccountNotFound.
	FindBy(ctx context.Context, match func(domain.Account) bool) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Add(ctx context.Context, account domain.Account) error
	Delete(ctx context.Context, username string) error
}
