package ui

import (
	"context"

	"github.com/agors/historiography/internal/core/domain"
)

const usersPageSize = 10

type userListScreen struct {
	c        *Controller
	accounts []domain.Account
}

func (c *Controller) userListScreen(ctx context.Context) screen {
	accounts, err := c.svc.Accounts.List(ctx)
	if err != nil {
		c.fail(err)
	}
	if c.usersCursor.PageSize == 0 {
		c.usersCursor = NewListCursor(usersPageSize, 0)
	}
	c.usersCursor.SetCount(len(accounts))
	return &userListScreen{c: c, accounts: accounts}
}

func (s *userListScreen) title() string { return "Manage users" }

func (s *userListScreen) render(cv *canvas) {
	if len(s.accounts) == 0 {
		cv.line(ColorMuted, "No accounts.")
		return
	}
	cur := s.c.usersCursor
	start, end := cur.Visible()
	cv.line(ColorMuted, "%-20s %-32s %s", "USERNAME", "EMAIL", "ROLE")
	for i := start; i < end; i++ {
		a := s.accounts[i]
		cv.option(i == cur.Selected, "%-20s %-32s %s", a.Username, a.Email, a.Role)
	}
	cv.blank()
	cv.line(ColorMuted, "Up/Down to move, Enter to delete, Esc to go back.")
}

func (s *userListScreen) handle(_ context.Context, ev KeyEvent) State {
	c := s.c
	switch ev.Key {
	case KeyArrowUp:
		c.usersCursor.Up()
	case KeyArrowDown:
		c.usersCursor.Down()
	case KeyEscape:
		return StateAdminMenu
	case KeyEnter:
		if len(s.accounts) == 0 {
			return stay
		}
		a := s.accounts[c.usersCursor.Selected]
		if a.IsAdmin() {
			c.fail(domain.ErrAdminProtected)
			return stay
		}
		c.pending = pendingAction{kind: confirmDeleteAccount, username: a.Username}
		return StateConfirm
	}
	return stay
}
