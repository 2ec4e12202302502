package jsonfile

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agors/historiography/internal/core/domain"
)

// ReviewRepository stores reviews as a JSON array in insertion order.
type ReviewRepository struct {
	mu      sync.RWMutex
	doc     document
	reviews []domain.Review
	lastID  int
}

func NewReviewRepository(path string, logger zerolog.Logger) *ReviewRepository {
	doc := newDocument(path, "reviews", logger)
	r := &ReviewRepository{doc: doc, reviews: load[[]domain.Review](doc)}
	for _, rv := range r.reviews {
		r.lastID = max(r.lastID, rv.ID)
	}
	return r
}

func (r *ReviewRepository) All(_ context.Context) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Review{}, r.reviews...), nil
}

func (r *ReviewRepository) FindBy(_ context.Context, match func(domain.Review) bool) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Review
	for _, rv := range r.reviews {
		if match(rv) {
			out = append(out, rv)
		}
	}
	return out, nil
}

// Add assigns the next unused id to review.ID and saves.
func (r *ReviewRepository) Add(_ context.Context, review *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	review.ID = r.lastID
	r.reviews = append(r.reviews, *review)
	if err := r.doc.save(r.reviews); err != nil {
		r.reviews = r.reviews[:len(r.reviews)-1]
		r.lastID--
		review.ID = 0
		return err
	}
	return nil
}

func (r *ReviewRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rv := range r.reviews {
		if rv.ID != id {
			continue
		}
		previous := append([]domain.Review{}, r.reviews...)
		r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
		if err := r.doc.save(r.reviews); err != nil {
			r.reviews = previous
			return err
		}
		return nil
	}
	return domain.ErrReviewNotFound
}
