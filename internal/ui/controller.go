// Package ui drives the catalog session: one iterative loop that renders the
// current screen, reads a key, and lets the screen pick the next state.
package ui

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/agors/historiography/internal/core/domain"
	"github.com/agors/historiography/internal/core/ports"
	"github.com/agors/historiography/internal/metrics"
)

// Services bundles the use cases the screens call.
type Services struct {
	Auth     ports.AuthService
	Accounts ports.AccountService
	Places   ports.PlaceService
	Reviews  ports.ReviewService
}

type Options struct {
	// SuccessDelay is how long a success message stays on screen before the
	// session moves on.
	SuccessDelay time.Duration
	// Pause blocks for the given duration. Defaults to time.Sleep.
	Pause func(time.Duration)
}

// screen is the behaviour of one state. handle returns the next state, or
// stay to keep the current screen and its input.
type screen interface {
	title() string
	render(cv *canvas)
	handle(ctx context.Context, ev KeyEvent) State
}

type Controller struct {
	display Display
	svc     Services
	logger  zerolog.Logger
	delay   time.Duration
	pause   func(time.Duration)

	session  Session
	feedback Feedback
	state    State
	screen   screen

	// Navigation context handed from one screen to the next.
	placesPurpose listPurpose
	placesCursor  ListCursor
	reviewsCursor ListCursor
	usersCursor   ListCursor
	placeID       int
	reviewPlace   string
	pending       pendingAction
}

func NewController(display Display, svc Services, logger zerolog.Logger, opts Options) *Controller {
	pause := opts.Pause
	if pause == nil {
		pause = time.Sleep
	}
	return &Controller{
		display: display,
		svc:     svc,
		logger:  logger,
		delay:   opts.SuccessDelay,
		pause:   pause,
		state:   StateMainMenu,
	}
}

// Session returns a copy of the current session.
func (c *Controller) Session() Session { return c.session }

// State returns the current navigation state.
func (c *Controller) State() State { return c.state }

// Run shows the greeting once, then loops until the Exit state is reached or
// the display is interrupted.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Info().Msg("session started")
	if err := c.greet(ctx); err != nil {
		return c.finish(err)
	}

	c.goTo(ctx, StateMainMenu)
	for c.state != StateExit {
		c.render()
		ev, err := c.display.ReadKey(ctx)
		if err != nil {
			return c.finish(err)
		}
		c.feedback.Clear()
		if next := c.screen.handle(ctx, ev); next != stay {
			c.goTo(ctx, next)
		}
	}
	return c.finish(nil)
}

func (c *Controller) finish(err error) error {
	c.state = StateExit
	c.session.reset()
	if errors.Is(err, ErrInterrupted) {
		c.logger.Info().Msg("session interrupted")
		return nil
	}
	if err != nil {
		c.logger.Error().Err(err).Msg("session aborted")
		return err
	}
	c.logger.Info().Msg("session ended")
	return nil
}

func (c *Controller) greet(ctx context.Context) error {
	c.display.Clear()
	drawFrame(c.display, "Historiography")
	cv := &canvas{d: c.display, row: contentTop + 2}
	cv.line(ColorTitle, "Welcome to Historiography,")
	cv.line(ColorDefault, "a catalog of historical places and what visitors think of them.")
	cv.blank()
	cv.line(ColorMuted, "Press any key to continue.")
	c.display.Refresh()
	_, err := c.display.ReadKey(ctx)
	return err
}

// goTo enters next, or MainMenu when the session may not see next.
func (c *Controller) goTo(ctx context.Context, next State) {
	if !allowed(next, c.session) {
		metrics.AccessDeniedTotal.WithLabelValues(next.String()).Inc()
		c.logger.Warn().
			Str("screen", next.String()).
			Str("role", c.session.Role.String()).
			Msg("access denied")
		c.feedback.SetError(feedbackMessage(domain.ErrForbidden, c.logger, next))
		next = StateMainMenu
	}
	c.logger.Debug().Str("from", c.state.String()).Str("to", next.String()).Msg("transition")
	c.state = next
	c.screen = c.open(ctx, next)
}

func (c *Controller) open(ctx context.Context, state State) screen {
	switch state {
	case StateMainMenu:
		return c.mainMenu()
	case StateRules:
		return c.rulesScreen()
	case StateRegistration:
		return c.registrationScreen()
	case StateLogin:
		return c.loginScreen()
	case StateAdminKey:
		return c.adminKeyScreen()
	case StateAdminMenu:
		return c.adminMenu()
	case StateUserMenu:
		return c.userMenu()
	case StatePlacesList:
		return c.placesScreen(ctx)
	case StatePlaceDetail:
		return c.placeDetailScreen(ctx)
	case StatePlaceActions:
		return c.placeActionsMenu(ctx)
	case StatePlaceAdd:
		return c.placeFormScreen(ctx, false)
	case StatePlaceEdit:
		return c.placeFormScreen(ctx, true)
	case StateReviewsMenu:
		return c.reviewsMenu()
	case StateReviewList:
		return c.reviewListScreen(ctx)
	case StateReviewPlacePick:
		return c.placePickScreen(ctx)
	case StateReviewAdd:
		return c.reviewFormScreen()
	case StateUserList:
		return c.userListScreen(ctx)
	case StateSettings:
		return c.settingsMenu()
	case StateConfirm:
		return c.confirmScreen()
	}
	return nil
}

// home is the top-level menu of the current role.
func (c *Controller) home() State {
	switch c.session.Role {
	case domain.SessionAdmin:
		return StateAdminMenu
	case domain.SessionUser:
		return StateUserMenu
	default:
		return StateMainMenu
	}
}

func (c *Controller) render() {
	metrics.ScreensShownTotal.WithLabelValues(c.state.String()).Inc()

	c.display.Clear()
	drawFrame(c.display, c.screen.title())
	c.screen.render(&canvas{d: c.display, row: contentTop})

	if msg, isErr := c.feedback.Pending(); msg != "" {
		color := ColorSuccess
		if isErr {
			color = ColorError
		}
		c.display.SetForeground(color)
		c.display.PutText(contentLeft, feedbackRow, clip(msg, contentWidth))
	}
	c.display.Refresh()
}

// flash shows msg on the current screen for the success delay.
func (c *Controller) flash(msg string) {
	c.feedback.SetSuccess(msg)
	c.render()
	c.pause(c.delay)
	c.feedback.Clear()
}

// fail reports err on the current screen.
func (c *Controller) fail(err error) {
	c.feedback.SetError(feedbackMessage(err, c.logger, c.state))
}
