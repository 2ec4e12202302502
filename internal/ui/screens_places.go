package ui

import (
	"context"
	"fmt"

	"github.com/agors/historiography/internal/core/domain"
	"github.com/agors/historiography/internal/core/ports"
)

const placesPageSize = 10

// listPurpose tells the places list what Enter opens.
type listPurpose int

const (
	purposeBrowse listPurpose = iota
	purposeEdit
)

func (c *Controller) resetPlaces(purpose listPurpose) {
	c.placesPurpose = purpose
	c.placesCursor = NewListCursor(placesPageSize, 0)
}

type placesScreen struct {
	c      *Controller
	places []domain.Place
}

func (c *Controller) placesScreen(ctx context.Context) screen {
	places, err := c.svc.Places.List(ctx)
	if err != nil {
		c.fail(err)
	}
	if c.placesCursor.PageSize == 0 {
		c.placesCursor = NewListCursor(placesPageSize, 0)
	}
	c.placesCursor.SetCount(len(places))
	return &placesScreen{c: c, places: places}
}

func (s *placesScreen) title() string {
	if s.c.placesPurpose == purposeEdit {
		return "Edit place"
	}
	return "Places"
}

func (s *placesScreen) render(cv *canvas) {
	if len(s.places) == 0 {
		cv.line(ColorMuted, "No places in the catalog yet.")
		return
	}
	cur := s.c.placesCursor
	start, end := cur.Visible()
	cv.line(ColorMuted, "%d places, showing %d-%d", len(s.places), start+1, end)
	cv.blank()
	for i := start; i < end; i++ {
		p := s.places[i]
		cv.option(i == cur.Selected, "%3d. %s, %s (%s)", p.ID, p.Name, p.Location, p.Category)
	}
	cv.blank()
	cv.line(ColorMuted, "Up/Down to move, Enter to open, Esc to go back.")
}

func (s *placesScreen) handle(_ context.Context, ev KeyEvent) State {
	c := s.c
	switch ev.Key {
	case KeyArrowUp:
		c.placesCursor.Up()
	case KeyArrowDown:
		c.placesCursor.Down()
	case KeyEscape:
		return c.home()
	case KeyEnter:
		if len(s.places) == 0 {
			return stay
		}
		c.placeID = s.places[c.placesCursor.Selected].ID
		if c.placesPurpose == purposeEdit {
			return StatePlaceActions
		}
		return StatePlaceDetail
	}
	return stay
}

type placeDetailScreen struct {
	place   *domain.Place
	summary ports.RatingSummary
}

func (c *Controller) placeDetailScreen(ctx context.Context) screen {
	s := &placeDetailScreen{}
	place, err := c.svc.Places.Get(ctx, c.placeID)
	if err != nil {
		c.fail(err)
		return s
	}
	s.place = place
	if s.summary, err = c.svc.Reviews.Summary(ctx, place.Name); err != nil {
		c.fail(err)
	}
	return s
}

func (s *placeDetailScreen) title() string {
	if s.place == nil {
		return "Place"
	}
	return s.place.Name
}

func (s *placeDetailScreen) render(cv *canvas) {
	if s.place != nil {
		cv.line(ColorDefault, "Location: %s", s.place.Location)
		cv.line(ColorDefault, "Category: %s", s.place.Category)
		cv.blank()
		cv.paragraph(ColorDefault, s.place.Description)
		cv.blank()
		if s.summary.Count == 0 {
			cv.line(ColorMuted, "No reviews yet.")
		} else {
			cv.line(ColorHighlight, "Average rating: %.1f / %d (%d reviews)", s.summary.Average, domain.MaxRating, s.summary.Count)
		}
		cv.blank()
	}
	cv.line(ColorMuted, "Press any key to go back.")
}

func (s *placeDetailScreen) handle(context.Context, KeyEvent) State { return StatePlacesList }

func (c *Controller) placeActionsMenu(ctx context.Context) screen {
	s := newMenuScreen("Place", StatePlacesList,
		menuItem{label: "Edit", next: StatePlaceEdit},
		menuItem{label: "Delete", next: StateConfirm},
		menuItem{label: "Back", next: StatePlacesList},
	)
	place, err := c.svc.Places.Get(ctx, c.placeID)
	if err != nil {
		c.fail(err)
		return s
	}
	s.heading = place.Name
	s.intro = []string{fmt.Sprintf("#%d, %s (%s)", place.ID, place.Location, place.Category)}
	s.items[1].prepare = func() {
		c.pending = pendingAction{kind: confirmDeletePlace, id: place.ID, label: place.Name}
	}
	return s
}

// placeFormScreen builds the add form, or the edit form prefilled with the
// selected place.
func (c *Controller) placeFormScreen(ctx context.Context, edit bool) screen {
	form := NewForm([]string{"Save", "Back"},
		&Field{Label: "Name", Max: MaxTextLen},
		&Field{Label: "Description", Max: MaxTextLen},
		&Field{Label: "Location", Max: MaxTextLen},
		&Field{Label: "Category", Max: MaxTextLen},
	)
	input := func() ports.PlaceInput {
		return ports.PlaceInput{
			Name:        form.Value(0),
			Description: form.Value(1),
			Location:    form.Value(2),
			Category:    form.Value(3),
		}
	}

	if !edit {
		s := &formScreen{heading: "Add place", form: form, back: StateAdminMenu}
		s.submit = func(ctx context.Context) State {
			place, err := c.svc.Places.Add(ctx, input())
			if err != nil {
				c.fail(err)
				return stay
			}
			c.flash(fmt.Sprintf("Place %q added with id %d.", place.Name, place.ID))
			return StateAdminMenu
		}
		return s
	}

	id := c.placeID
	if place, err := c.svc.Places.Get(ctx, id); err != nil {
		c.fail(err)
	} else {
		form.Fields[0].Value = place.Name
		form.Fields[1].Value = place.Description
		form.Fields[2].Value = place.Location
		form.Fields[3].Value = place.Category
	}
	s := &formScreen{heading: "Edit place", form: form, back: StatePlaceActions}
	s.submit = func(ctx context.Context) State {
		if _, err := c.svc.Places.Update(ctx, id, input()); err != nil {
			c.fail(err)
			return stay
		}
		c.feedback.SetSuccess("Place updated.")
		return StatePlacesList
	}
	return s
}
