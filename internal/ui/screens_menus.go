package ui

import (
	"context"
	"fmt"
)

type menuItem struct {
	label string
	next  State
	// prepare runs right before the transition.
	prepare func()
}

type menuScreen struct {
	heading string
	intro   []string
	items   []menuItem
	menu    Menu
	back    State
}

func newMenuScreen(heading string, back State, items ...menuItem) *menuScreen {
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.label
	}
	return &menuScreen{heading: heading, items: items, menu: NewMenu(labels...), back: back}
}

func (s *menuScreen) title() string { return s.heading }

func (s *menuScreen) render(cv *canvas) {
	for _, line := range s.intro {
		cv.line(ColorDefault, "%s", line)
	}
	if len(s.intro) > 0 {
		cv.blank()
	}
	cv.menu(s.menu)
}

func (s *menuScreen) handle(_ context.Context, ev KeyEvent) State {
	if ev.Key == KeyEscape {
		return s.back
	}
	i, ok := s.menu.Handle(ev)
	if !ok {
		return stay
	}
	if p := s.items[i].prepare; p != nil {
		p()
	}
	return s.items[i].next
}

// textScreen shows fixed lines until any key is pressed.
type textScreen struct {
	heading string
	lines   []string
	back    State
}

func (s *textScreen) title() string { return s.heading }

func (s *textScreen) render(cv *canvas) {
	for _, line := range s.lines {
		cv.line(ColorDefault, "%s", line)
	}
	cv.blank()
	cv.line(ColorMuted, "Press any key to go back.")
}

func (s *textScreen) handle(context.Context, KeyEvent) State { return s.back }

func (c *Controller) mainMenu() screen {
	return newMenuScreen("Main menu", stay,
		menuItem{label: "Register", next: StateRegistration},
		menuItem{label: "Log in", next: StateLogin},
		menuItem{label: "Rules", next: StateRules},
		menuItem{label: "Exit", next: StateExit},
	)
}

func (c *Controller) rulesScreen() screen {
	return &textScreen{
		heading: "Rules",
		back:    StateMainMenu,
		lines: []string{
			"1. Usernames and emails are unique.",
			"2. A username is 3 to 30 letters, digits, '.', '_' or '-'.",
			"3. The email must be a valid address, like name@example.com.",
			"4. The password has at least 6 characters.",
			"5. Reviews rate a place from 0 to 9.",
			"6. Admin accounts also need the admin key to sign in.",
		},
	}
}

func (c *Controller) userMenu() screen {
	s := newMenuScreen("User menu", stay,
		menuItem{label: "Places", next: StatePlacesList, prepare: func() { c.resetPlaces(purposeBrowse) }},
		menuItem{label: "Reviews & ratings", next: StateReviewsMenu},
		menuItem{label: "Settings", next: StateSettings},
		menuItem{label: "Exit", next: StateExit},
	)
	s.intro = []string{fmt.Sprintf("Signed in as %s.", c.session.Username())}
	return s
}

func (c *Controller) adminMenu() screen {
	s := newMenuScreen("Admin menu", stay,
		menuItem{label: "Manage users", next: StateUserList, prepare: func() { c.usersCursor = NewListCursor(usersPageSize, 0) }},
		menuItem{label: "Places", next: StatePlacesList, prepare: func() { c.resetPlaces(purposeBrowse) }},
		menuItem{label: "Add place", next: StatePlaceAdd},
		menuItem{label: "Edit place", next: StatePlacesList, prepare: func() { c.resetPlaces(purposeEdit) }},
		menuItem{label: "Reviews", next: StateReviewList, prepare: func() { c.reviewsCursor = NewListCursor(reviewsPageSize, 0) }},
		menuItem{label: "Settings", next: StateSettings},
		menuItem{label: "Exit", next: StateExit},
	)
	s.intro = []string{fmt.Sprintf("Signed in as %s (admin).", c.session.Username())}
	return s
}

func (c *Controller) reviewsMenu() screen {
	return newMenuScreen("Reviews & ratings", StateUserMenu,
		menuItem{label: "View reviews", next: StateReviewList, prepare: func() { c.reviewsCursor = NewListCursor(reviewsPageSize, 0) }},
		menuItem{label: "Add review", next: StateReviewPlacePick},
		menuItem{label: "Back", next: StateUserMenu},
	)
}

func (c *Controller) settingsMenu() screen {
	home := c.home()
	return newMenuScreen("Settings", home,
		menuItem{label: "Log out", next: StateConfirm, prepare: func() { c.pending = pendingAction{kind: confirmLogout} }},
		menuItem{label: "Back", next: home},
	)
}

type confirmKind int

const (
	confirmLogout confirmKind = iota + 1
	confirmDeletePlace
	confirmDeleteReview
	confirmDeleteAccount
)

// pendingAction is what the confirm screen runs on "y".
type pendingAction struct {
	kind     confirmKind
	id       int
	username string
	label    string
}

// parent is where the confirm screen returns when the action is declined.
func (p pendingAction) parent() State {
	switch p.kind {
	case confirmDeletePlace:
		return StatePlacesList
	case confirmDeleteReview:
		return StateReviewList
	case confirmDeleteAccount:
		return StateUserList
	default:
		return StateSettings
	}
}

func (p pendingAction) question() string {
	switch p.kind {
	case confirmDeletePlace:
		return fmt.Sprintf("Delete place %q?", p.label)
	case confirmDeleteReview:
		return fmt.Sprintf("Delete review #%d of %q?", p.id, p.label)
	case confirmDeleteAccount:
		return fmt.Sprintf("Delete account %q?", p.username)
	default:
		return "Log out?"
	}
}

type confirmScreen struct {
	c      *Controller
	action pendingAction
}

func (c *Controller) confirmScreen() screen {
	return &confirmScreen{c: c, action: c.pending}
}

func (s *confirmScreen) title() string { return "Confirm" }

func (s *confirmScreen) render(cv *canvas) {
	cv.line(ColorDefault, "%s", s.action.question())
	cv.blank()
	cv.line(ColorMuted, "Press y to confirm, any other key to cancel.")
}

func (s *confirmScreen) handle(ctx context.Context, ev KeyEvent) State {
	c := s.c
	c.pending = pendingAction{}
	if ev.Key != KeyCharacter || (ev.Rune != 'y' && ev.Rune != 'Y') {
		c.feedback.SetSuccess("Cancelled, nothing changed.")
		return s.action.parent()
	}

	switch s.action.kind {
	case confirmLogout:
		c.logger.Info().Str("username", c.session.Username()).Msg("logged out")
		c.session.reset()
		c.feedback.SetSuccess("You have been logged out.")
		return StateMainMenu
	case confirmDeletePlace:
		if err := c.svc.Places.Delete(ctx, s.action.id); err != nil {
			c.fail(err)
		} else {
			c.feedback.SetSuccess("Place deleted.")
		}
	case confirmDeleteReview:
		if err := c.svc.Reviews.Delete(ctx, s.action.id); err != nil {
			c.fail(err)
		} else {
			c.feedback.SetSuccess("Review deleted.")
		}
	case confirmDeleteAccount:
		if err := c.svc.Accounts.Delete(ctx, s.action.username); err != nil {
			c.fail(err)
		} else {
			c.feedback.SetSuccess("Account deleted.")
		}
	}
	return s.action.parent()
}
