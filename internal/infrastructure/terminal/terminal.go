// Package terminal implements ui.Display on a tcell screen.
package terminal

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/agors/historiography/internal/ui"
)

var palette = map[ui.Color]tcell.Style{
	ui.ColorDefault:   tcell.StyleDefault,
	ui.ColorTitle:     tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	ui.ColorHighlight: tcell.StyleDefault.Foreground(tcell.ColorAqua),
	ui.ColorMuted:     tcell.StyleDefault.Foreground(tcell.ColorGray),
	ui.ColorError:     tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	ui.ColorSuccess:   tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
}

type Terminal struct {
	screen tcell.Screen
	style  tcell.Style
	events chan tcell.Event
	quit   chan struct{}
	closer sync.Once
}

// Open takes over the controlling terminal.
func Open() (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return New(s)
}

// New initialises s and starts forwarding its events.
func New(s tcell.Screen) (*Terminal, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault)
	s.HideCursor()

	t := &Terminal{
		screen: s,
		style:  tcell.StyleDefault,
		events: make(chan tcell.Event),
		quit:   make(chan struct{}),
	}
	go s.ChannelEvents(t.events, t.quit)
	return t, nil
}

// Close restores the terminal.
// Close restores the terminal. Calls after the first do nothing.
func (t *Terminal) Close() {
	t.closer.Do(func() {
		close(t.quit)
		t.screen.Fini()
	})
}

func (t *Terminal) Clear() { t.screen.Clear() }

func (t *Terminal) SetForeground(c ui.Color) {
	style, ok := palette[c]
	if !ok {
		style = tcell.StyleDefault
	}
	t.style = style
}

// PutText writes s from (x, y), one cell per rune, clipped at the right edge.
func (t *Terminal) PutText(x, y int, s string) {
	w, _ := t.screen.Size()
	for _, r := range s {
		if x >= w {
			return
		}
		t.screen.SetContent(x, y, r, nil, t.style)
		x++
	}
}

func (t *Terminal) Refresh() { t.screen.Show() }

// ReadKey blocks for the next key the controller understands. Ctrl-C and a
// closed screen report ui.ErrInterrupted; resizes are redrawn in place.
func (t *Terminal) ReadKey(ctx context.Context) (ui.KeyEvent, error) {
	for {
		select {
		case <-ctx.Done():
			return ui.KeyEvent{}, ctx.Err()
		case ev, ok := <-t.events:
			if !ok {
				return ui.KeyEvent{}, ui.ErrInterrupted
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				t.screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC {
					return ui.KeyEvent{}, ui.ErrInterrupted
				}
				if k, ok := translate(ev); ok {
					return k, nil
				}
			}
		}
	}
}

func translate(ev *tcell.EventKey) (ui.KeyEvent, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return ui.KeyEvent{Key: ui.KeyArrowUp}, true
	case tcell.KeyDown:
		return ui.KeyEvent{Key: ui.KeyArrowDown}, true
	case tcell.KeyLeft:
		return ui.KeyEvent{Key: ui.KeyArrowLeft}, true
	case tcell.KeyRight:
		return ui.KeyEvent{Key: ui.KeyArrowRight}, true
	case tcell.KeyEnter:
		return ui.KeyEvent{Key: ui.KeyEnter}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ui.KeyEvent{Key: ui.KeyBackspace}, true
	case tcell.KeyEscape:
		return ui.KeyEvent{Key: ui.KeyEscape}, true
	case tcell.KeyRune:
		return ui.Char(ev.Rune()), true
	}
	return ui.KeyEvent{}, false
}
