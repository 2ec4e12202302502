package ports

import (
	"context"

	"github.com/agors/historiography/internal/core/domain"
)

// ReviewRepository persists reviews. Add assigns the next id (highest id + 1).
type ReviewRepository interface {
	All(ctx context.Context) ([]domain.Review, error)
	FindBy(ctx context.Context, match func(domain.Review) bool) ([]domain.Review, error)
	Add(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id int) error
}
