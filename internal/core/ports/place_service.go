package ports

import (
	"context"

	"github.com/agors/historiography/internal/core/domain"
)

// PlaceInput carries the four editable place fields.
type PlaceInput struct {
	Name        string
	Description string
	Location    string
	Category    string
}

// PlaceService defines catalog operations on places.
type PlaceService interface {
	List(ctx context.Context) ([]domain.Place, error)
	Get(ctx context.Context, id int) (*domain.Place, error)
	Add(ctx context.Context, input PlaceInput) (*domain.Place, error)
	Update(ctx context.Context, id int, input PlaceInput) (*domain.Place, error)
	Delete(ctx context.Context, id int) error
	// Search matches the query against place names, ignoring case and
	// transliteration. An empty query returns every place.
	Search(ctx context.Context, query string) ([]domain.Place, error)
}
