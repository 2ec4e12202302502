package ports

import (
	"context"

	"github.com/agors/historiography/internal/core/domain"
)

// PlaceRepository persists places. Add assigns the next id (highest id + 1).
type PlaceRepository interface {
	All(ctx context.Context) ([]domain.Place, error)
	FindBy(ctx context.Context, match func(domain.Place) bool) ([]domain.Place, error)
	Get(ctx context.Context, id int) (*domain.Place, error)
	Add(ctx context.Context, place *domain.Place) error
	Update(ctx context.Context, place domain.Place) error
	Delete(ctx context.Context, id int) error
}
