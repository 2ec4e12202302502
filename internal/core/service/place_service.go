package service

import (
	"context"
	"strings"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/agors/historiography/internal/core/domain"
	"github.com/agors/historiography/internal/core/ports"
	"github.com/agors/historiography/internal/core/validation"
	"github.com/agors/historiography/internal/metrics"
)

type PlaceService struct {
	repo   ports.PlaceRepository
	logger zerolog.Logger
}

func NewPlaceService(repo ports.PlaceRepository, logger zerolog.Logger) *PlaceService {
	return &PlaceService{repo: repo, logger: logger}
}

func (s *PlaceService) List(ctx context.Context) ([]domain.Place, error) {
	return s.repo.All(ctx)
}

func (s *PlaceService) Get(ctx context.Context, id int) (*domain.Place, error) {
	return s.repo.Get(ctx, id)
}

// Add validates the four text fields and stores a new place. The store assigns
// the id.
func (s *PlaceService) Add(ctx context.Context, input ports.PlaceInput) (*domain.Place, error) {
	input = trimPlaceInput(input)
	if err := validatePlace(input); err != nil {
		return nil, err
	}

	place := &domain.Place{
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		Category:    input.Category,
	}
	if err := s.repo.Add(ctx, place); err != nil {
		return nil, err
	}

	metrics.PlaceOperationsTotal.WithLabelValues("add").Inc()
	s.logger.Info().Int("place_id", place.ID).Str("name", place.Name).Msg("place added")
	return place, nil
}

func (s *PlaceService) Update(ctx context.Context, id int, input ports.PlaceInput) (*domain.Place, error) {
	input = trimPlaceInput(input)
	if err := validatePlace(input); err != nil {
		return nil, err
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}

	place := domain.Place{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		Category:    input.Category,
	}
	if err := s.repo.Update(ctx, place); err != nil {
		return nil, err
	}

	metrics.PlaceOperationsTotal.WithLabelValues("update").Inc()
	s.logger.Info().Int("place_id", id).Str("name", place.Name).Msg("place updated")
	return &place, nil
}

// Delete removes the place only. Reviews keep their copy of the place name.
func (s *PlaceService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	metrics.PlaceOperationsTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Int("place_id", id).Msg("place deleted")
	return nil
}

// Search keeps the places whose name contains query, ignoring case. Names are
// also compared in transliterated form, so "krakow" finds "Kraków".
func (s *PlaceService) Search(ctx context.Context, query string) ([]domain.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.All(ctx)
	}
	lower := strings.ToLower(query)
	slugged := slug.Make(query)
	return s.repo.FindBy(ctx, func(p domain.Place) bool {
		if strings.Contains(strings.ToLower(p.Name), lower) {
			return true
		}
		return slugged != "" && strings.Contains(slug.Make(p.Name), slugged)
	})
}

func trimPlaceInput(in ports.PlaceInput) ports.PlaceInput {
	return ports.PlaceInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		Category:    strings.TrimSpace(in.Category),
	}
}

func validatePlace(in ports.PlaceInput) error {
	return validation.RequiredFieldsNonEmpty(
		validation.Field{Name: "name", Value: in.Name},
		validation.Field{Name: "description", Value: in.Description},
		validation.Field{Name: "location", Value: in.Location},
		validation.Field{Name: "category", Value: in.Category},
	)
}
