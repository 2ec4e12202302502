package ui

import (
	"context"
	"fmt"

	"github.com/agors/historiography/internal/core/domain"
	"github.com/agors/historiography/internal/core/ports"
)

// formScreen is a Form plus what its buttons do. Button 0 submits; any other
// button and Escape return to back.
type formScreen struct {
	heading string
	intro   []string
	form    *Form
	back    State
	submit  func(ctx context.Context) State
	// onBack runs before leaving through Back or Escape.
	onBack func()
}

func (s *formScreen) title() string { return s.heading }

func (s *formScreen) render(cv *canvas) {
	for _, line := range s.intro {
		cv.line(ColorDefault, "%s", line)
	}
	if len(s.intro) > 0 {
		cv.blank()
	}
	cv.form(s.form)
	cv.blank()
	cv.line(ColorMuted, "Up/Down to move, Enter on a button, Esc to go back.")
}

func (s *formScreen) handle(ctx context.Context, ev KeyEvent) State {
	action, button := s.form.Handle(ev)
	switch {
	case action == FormButton && button == 0:
		return s.submit(ctx)
	case action == FormButton, action == FormCancel:
		if s.onBack != nil {
			s.onBack()
		}
		return s.back
	}
	return stay
}

func roleChoices() []string {
	out := make([]string, len(domain.Roles))
	for i, r := range domain.Roles {
		out[i] = string(r)
	}
	return out
}

func (c *Controller) registrationScreen() screen {
	form := NewForm([]string{"Register", "Back"},
		&Field{Label: "Username", Max: MaxCredentialLen},
		&Field{Label: "Email", Max: MaxCredentialLen},
		&Field{Label: "Password", Max: MaxCredentialLen, Masked: true},
		&Field{Label: "Role", Choices: roleChoices()},
	)
	s := &formScreen{
		heading: "Registration",
		intro:   []string{"Use Left/Right to pick the role. See Rules for the field requirements."},
		form:    form,
		back:    StateMainMenu,
	}
	s.submit = func(ctx context.Context) State {
		account, err := c.svc.Auth.Register(ctx, ports.RegisterInput{
			Username: form.Value(0),
			Email:    form.Value(1),
			Password: form.Value(2),
			Role:     domain.Role(form.Value(3)),
		})
		if err != nil {
			c.fail(err)
			return stay
		}
		c.flash(fmt.Sprintf("Account %s created. You can log in now.", account.Username))
		return StateMainMenu
	}
	return s
}

func (c *Controller) loginScreen() screen {
	form := NewForm([]string{"Log in", "Back"},
		&Field{Label: "Username or email", Max: MaxCredentialLen},
		&Field{Label: "Password", Max: MaxCredentialLen, Masked: true},
	)
	s := &formScreen{heading: "Log in", form: form, back: StateMainMenu}
	s.submit = func(ctx context.Context) State {
		account, err := c.svc.Auth.Login(ctx, form.Value(0), form.Value(1))
		if err != nil {
			c.fail(err)
			return stay
		}
		if account.IsAdmin() {
			c.session.pending = account
			return StateAdminKey
		}
		c.session.signIn(account, domain.SessionUser)
		c.flash(fmt.Sprintf("Welcome, %s!", account.Username))
		return StateUserMenu
	}
	return s
}

func (c *Controller) adminKeyScreen() screen {
	form := NewForm([]string{"Enter", "Back"},
		&Field{Label: "Admin key", Max: MaxCredentialLen, Masked: true},
	)
	s := &formScreen{
		heading: "Admin key",
		intro:   []string{fmt.Sprintf("Password accepted for %s. Enter the admin key.", c.session.pending.Username)},
		form:    form,
		back:    StateLogin,
		onBack:  func() { c.session.pending = nil },
	}
	s.submit = func(_ context.Context) State {
		if err := c.svc.Auth.VerifyAdminKey(form.Value(0)); err != nil {
			c.fail(err)
			return stay
		}
		c.session.signIn(c.session.pending, domain.SessionAdmin)
		c.logger.Info().Str("username", c.session.Username()).Msg("admin session opened")
		c.flash(fmt.Sprintf("Welcome, %s!", c.session.Username()))
		return StateAdminMenu
	}
	return s
}
