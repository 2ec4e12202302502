package jsonfile

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agors/historiography/internal/core/domain"
)

// PlaceRepository stores places as a JSON array in insertion order.
type PlaceRepository struct {
	mu     sync.RWMutex
	doc    document
	places []domain.Place
	// lastID is the highest id ever assigned; it never goes down on Delete.
	lastID int
}

func NewPlaceRepository(path string, logger zerolog.Logger) *PlaceRepository {
	doc := newDocument(path, "places", logger)
	r := &PlaceRepository{doc: doc, places: load[[]domain.Place](doc)}
	for _, p := range r.places {
		r.lastID = max(r.lastID, p.ID)
	}
	return r
}

func (r *PlaceRepository) All(_ context.Context) ([]domain.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Place{}, r.places...), nil
}

func (r *PlaceRepository) FindBy(_ context.Context, match func(domain.Place) bool) ([]domain.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Place
	for _, p := range r.places {
		if match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlaceRepository) Get(_ context.Context, id int) (*domain.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrPlaceNotFound
	}
	p := r.places[i]
	return &p, nil
}

// Add assigns the next unused id to place.ID and saves. Deleted ids are
// never handed out again.
func (r *PlaceRepository) Add(_ context.Context, place *domain.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	place.ID = r.lastID
	r.places = append(r.places, *place)
	if err := r.doc.save(r.places); err != nil {
		r.places = r.places[:len(r.places)-1]
		r.lastID--
		place.ID = 0
		return err
	}
	return nil
}

func (r *PlaceRepository) Update(_ context.Context, place domain.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(place.ID)
	if i < 0 {
		return domain.ErrPlaceNotFound
	}
	previous := r.places[i]
	r.places[i] = place
	if err := r.doc.save(r.places); err != nil {
		r.places[i] = previous
		return err
	}
	return nil
}

func (r *PlaceRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrPlaceNotFound
	}
	previous := append([]domain.Place{}, r.places...)
	r.places = append(r.places[:i], r.places[i+1:]...)
	if err := r.doc.save(r.places); err != nil {
		r.places = previous
		return err
	}
	return nil
}

func (r *PlaceRepository) indexOf(id int) int {
	for i, p := range r.places {
		if p.ID == id {
			return i
		}
	}
	return -1
}
