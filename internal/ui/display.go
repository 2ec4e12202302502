package ui

import (
	"context"
	"errors"
)

// ErrInterrupted is returned by Display.ReadKey when the user aborts the
// session (Ctrl-C). The controller treats it as Exit.
var ErrInterrupted = errors.New("interrupted")

// Key identifies a key press.
type Key int

const (
	KeyCharacter Key = iota
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyEnter
	KeyBackspace
	KeyEscape
)

// KeyEvent is one key press. Rune is set only for KeyCharacter.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// Char builds a KeyCharacter event.
func Char(r rune) KeyEvent {
	return KeyEvent{Key: KeyCharacter, Rune: r}
}

// Color is a semantic foreground colour; the Display maps it to its palette.
type Color int

const (
	ColorDefault Color = iota
	ColorTitle
	ColorHighlight
	ColorMuted
	ColorError
	ColorSuccess
)

// Display is the terminal the controller draws on. ReadKey blocks until a key
// is pressed or ctx is done.
type Display interface {
	Clear()
	SetForeground(c Color)
	PutText(x, y int, s string)
	Refresh()
	ReadKey(ctx context.Context) (KeyEvent, error)
}
