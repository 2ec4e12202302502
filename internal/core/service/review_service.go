package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agors/historiography/internal/core/domain"
	"github.com/agors/historiography/internal/core/ports"
	"github.com/agors/historiography/internal/core/validation"
	"github.com/agors/historiography/internal/metrics"
)

type ReviewService struct {
	repo   ports.ReviewRepository
	logger zerolog.Logger
}

func NewReviewService(repo ports.ReviewRepository, logger zerolog.Logger) *ReviewService {
	return &ReviewService{repo: repo, logger: logger}
}

func (s *ReviewService) List(ctx context.Context) ([]domain.Review, error) {
	return s.repo.All(ctx)
}

// Add rejects empty text and out-of-range ratings before the store is touched.
func (s *ReviewService) Add(ctx context.Context, input ports.ReviewInput) (*domain.Review, error) {
	review := &domain.Review{
		PlaceName: strings.TrimSpace(input.PlaceName),
		Text:      strings.TrimSpace(input.Text),
		Rating:    input.Rating,
		Author:    strings.TrimSpace(input.Author),
	}
	if err := validation.RequiredFieldsNonEmpty(
		validation.Field{Name: "place", Value: review.PlaceName},
		validation.Field{Name: "review", Value: review.Text},
	); err != nil {
		metrics.ReviewOperationsTotal.WithLabelValues("add", "invalid").Inc()
		return nil, err
	}
	if err := validation.RatingInRange(review.Rating); err != nil {
		metrics.ReviewOperationsTotal.WithLabelValues("add", "invalid").Inc()
		return nil, err
	}
	if review.Author == "" {
		review.Author = "anonymous"
	}

	if err := s.repo.Add(ctx, review); err != nil {
		metrics.ReviewOperationsTotal.WithLabelValues("add", "error").Inc()
		return nil, err
	}

	metrics.ReviewOperationsTotal.WithLabelValues("add", "ok").Inc()
	s.logger.Info().
		Int("review_id", review.ID).
		Str("place", review.PlaceName).
		Int("rating", review.Rating).
		Str("author", review.Author).
		Msg("review added")
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		result := "error"
		if errors.Is(err, domain.ErrReviewNotFound) {
			result = "invalid"
		}
		metrics.ReviewOperationsTotal.WithLabelValues("delete", result).Inc()
		return err
	}
	metrics.ReviewOperationsTotal.WithLabelValues("delete", "ok").Inc()
	s.logger.Info().Int("review_id", id).Msg("review deleted")
	return nil
}

// Summary averages the ratings of every review written for placeName.
func (s *ReviewService) Summary(ctx context.Context, placeName string) (ports.RatingSummary, error) {
	reviews, err := s.repo.FindBy(ctx, func(r domain.Review) bool {
		return r.PlaceName == placeName
	})
	if err != nil {
		return ports.RatingSummary{}, err
	}
	if len(reviews) == 0 {
		return ports.RatingSummary{}, nil
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return ports.RatingSummary{
		Count:   len(reviews),
		Average: float64(total) / float64(len(reviews)),
	}, nil
}
