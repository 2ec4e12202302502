package ui

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/agors/historiography/internal/core/domain"
	"github.com/agors/historiography/internal/core/ports"
	"github.com/agors/historiography/internal/core/validation"
)

const (
	reviewsPageSize   = 5
	placePickPageSize = 13
)

type reviewListScreen struct {
	c       *Controller
	reviews []domain.Review
}

func (c *Controller) reviewListScreen(ctx context.Context) screen {
	reviews, err := c.svc.Reviews.List(ctx)
	if err != nil {
		c.fail(err)
	}
	if c.reviewsCursor.PageSize == 0 {
		c.reviewsCursor = NewListCursor(reviewsPageSize, 0)
	}
	c.reviewsCursor.SetCount(len(reviews))
	return &reviewListScreen{c: c, reviews: reviews}
}

func (s *reviewListScreen) title() string { return "Reviews" }

func (s *reviewListScreen) moderating() bool {
	return s.c.session.Role == domain.SessionAdmin
}

func (s *reviewListScreen) render(cv *canvas) {
	if len(s.reviews) == 0 {
		cv.line(ColorMuted, "No reviews yet.")
		return
	}
	cur := s.c.reviewsCursor
	start, end := cur.Visible()
	cv.line(ColorMuted, "%d reviews, showing %d-%d", len(s.reviews), start+1, end)
	cv.blank()
	for i := start; i < end; i++ {
		r := s.reviews[i]
		cv.option(i == cur.Selected, "#%d %s  %d/%d  by %s", r.ID, r.PlaceName, r.Rating, domain.MaxRating, r.Author)
		cv.line(ColorMuted, "    %s", r.Text)
	}
	cv.blank()
	if s.moderating() {
		cv.line(ColorMuted, "Up/Down to move, Enter to delete, Esc to go back.")
	} else {
		cv.line(ColorMuted, "Up/Down to move, Esc to go back.")
	}
}

func (s *reviewListScreen) handle(_ context.Context, ev KeyEvent) State {
	c := s.c
	switch ev.Key {
	case KeyArrowUp:
		c.reviewsCursor.Up()
	case KeyArrowDown:
		c.reviewsCursor.Down()
	case KeyEscape:
		if s.moderating() {
			return StateAdminMenu
		}
		return StateReviewsMenu
	case KeyEnter:
		if !s.moderating() || len(s.reviews) == 0 {
			return stay
		}
		r := s.reviews[c.reviewsCursor.Selected]
		c.pending = pendingAction{kind: confirmDeleteReview, id: r.ID, label: r.PlaceName}
		return StateConfirm
	}
	return stay
}

// placePickScreen filters places by name as the user types.
type placePickScreen struct {
	c       *Controller
	query   string
	results []domain.Place
	cursor  ListCursor
}

func (c *Controller) placePickScreen(ctx context.Context) screen {
	s := &placePickScreen{c: c, cursor: NewListCursor(placePickPageSize, 0)}
	s.search(ctx)
	return s
}

func (s *placePickScreen) search(ctx context.Context) {
	results, err := s.c.svc.Places.Search(ctx, s.query)
	if err != nil {
		s.c.fail(err)
	}
	s.results = results
	s.cursor = NewListCursor(placePickPageSize, len(results))
}

func (s *placePickScreen) title() string { return "Choose a place to review" }

func (s *placePickScreen) render(cv *canvas) {
	cv.line(ColorHighlight, "Search: %s_", s.query)
	cv.blank()
	if len(s.results) == 0 {
		cv.line(ColorMuted, "No matching places.")
	}
	start, end := s.cursor.Visible()
	for i := start; i < end; i++ {
		p := s.results[i]
		cv.option(i == s.cursor.Selected, "%s (%s)", p.Name, p.Location)
	}
	cv.blank()
	cv.line(ColorMuted, "Type to filter, Up/Down to move, Enter to choose, Esc to go back.")
}

func (s *placePickScreen) handle(ctx context.Context, ev KeyEvent) State {
	switch ev.Key {
	case KeyArrowUp:
		s.cursor.Up()
	case KeyArrowDown:
		s.cursor.Down()
	case KeyEscape:
		return StateReviewsMenu
	case KeyBackspace:
		if s.query != "" {
			_, size := utf8.DecodeLastRuneInString(s.query)
			s.query = s.query[:len(s.query)-size]
			s.search(ctx)
		}
	case KeyCharacter:
		if utf8.RuneCountInString(s.query) < MaxCredentialLen {
			s.query += string(ev.Rune)
			s.search(ctx)
		}
	case KeyEnter:
		if len(s.results) == 0 {
			s.c.feedback.SetError("no place selected")
			return stay
		}
		s.c.reviewPlace = s.results[s.cursor.Selected].Name
		return StateReviewAdd
	}
	return stay
}

func (c *Controller) reviewFormScreen() screen {
	form := NewForm([]string{"Submit", "Back"},
		&Field{Label: "Review", Max: MaxTextLen},
		&Field{Label: "Rating (0-9)", Max: 2},
	)
	place := c.reviewPlace
	s := &formScreen{
		heading: "Add review",
		intro:   []string{"Place: " + place},
		form:    form,
		back:    StateReviewsMenu,
	}
	s.submit = func(ctx context.Context) State {
		if err := validation.RequiredFieldsNonEmpty(
			validation.Field{Name: "review", Value: form.Value(0)},
			validation.Field{Name: "rating", Value: form.Value(1)},
		); err != nil {
			c.fail(err)
			return stay
		}
		rating, err := validation.ParseRating(form.Value(1))
		if err != nil {
			c.fail(err)
			return stay
		}
		if _, err := c.svc.Reviews.Add(ctx, ports.ReviewInput{
			PlaceName: place,
			Text:      strings.TrimSpace(form.Value(0)),
			Rating:    rating,
			Author:    c.session.Username(),
		}); err != nil {
			c.fail(err)
			return stay
		}
		c.flash("Review added. Thank you!")
		return StateReviewsMenu
	}
	return s
}
