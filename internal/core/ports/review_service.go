package ports

import (
	"context"

	"github.com/agors/historiography/internal/core/domain"
)

// ReviewInput is the DTO passed from the review form to ReviewService.
type ReviewInput struct {
	PlaceName string
	Text      string
	Rating    int
	Author    string
}

// RatingSummary aggregates the reviews written for one place name.
type RatingSummary struct {
	Count   int
	Average float64
}

// ReviewService processes reviews and ratings.
type ReviewService interface {
	List(ctx context.Context) ([]domain.Review, error)
	Add(ctx context.Context, input ReviewInput) (*domain.Review, error)
	Delete(ctx context.Context, id int) error
	Summary(ctx context.Context, placeName string) (RatingSummary, error)
}
