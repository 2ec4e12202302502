package ui

import (
	"context"
	"strings"
)

// fakeDisplay replays scripted keys and records every refreshed frame.
type fakeDisplay struct {
	keys   []KeyEvent
	grid   map[int][]rune
	frames []string
}

func newFakeDisplay(keys ...KeyEvent) *fakeDisplay {
	return &fakeDisplay{keys: keys, grid: map[int][]rune{}}
}

func (d *fakeDisplay) Clear()              { d.grid = map[int][]rune{} }
func (d *fakeDisplay) SetForeground(Color) {}

func (d *fakeDisplay) PutText(x, y int, s string) {
	row := d.grid[y]
	for _, r := range s {
		for len(row) <= x {
			row = append(row, ' ')
		}
		row[x] = r
		x++
	}
	d.grid[y] = row
}

func (d *fakeDisplay) Refresh() {
	var b strings.Builder
	for y := 0; y < frameHeight; y++ {
		b.WriteString(strings.TrimRight(string(d.grid[y]), " "))
		b.WriteByte('\n')
	}
	d.frames = append(d.frames, b.String())
}

// ReadKey reports ErrInterrupted once the script is exhausted.
func (d *fakeDisplay) ReadKey(ctx context.Context) (KeyEvent, error) {
	if err := ctx.Err(); err != nil {
		return KeyEvent{}, err
	}
	if len(d.keys) == 0 {
		return KeyEvent{}, ErrInterrupted
	}
	ev := d.keys[0]
	d.keys = d.keys[1:]
	return ev, nil
}

func (d *fakeDisplay) lastFrame() string {
	if len(d.frames) == 0 {
		return ""
	}
	return d.frames[len(d.frames)-1]
}

// sawText reports whether any frame contained s.
func (d *fakeDisplay) sawText(s string) bool {
	for _, f := range d.frames {
		if strings.Contains(f, s) {
			return true
		}
	}
	return false
}

// Key script helpers.

var (
	up     = KeyEvent{Key: KeyArrowUp}
	down   = KeyEvent{Key: KeyArrowDown}
	left   = KeyEvent{Key: KeyArrowLeft}
	right  = KeyEvent{Key: KeyArrowRight}
	enter  = KeyEvent{Key: KeyEnter}
	back   = KeyEvent{Key: KeyBackspace}
	escape = KeyEvent{Key: KeyEscape}
)

func text(s string) []KeyEvent {
	out := make([]KeyEvent, 0, len(s))
	for _, r := range s {
		out = append(out, Char(r))
	}
	return out
}

func times(ev KeyEvent, n int) []KeyEvent {
	out := make([]KeyEvent, n)
	for i := range out {
		out[i] = ev
	}
	return out
}

// script flattens single events and slices of events into one key list.
func script(parts ...any) []KeyEvent {
	var out []KeyEvent
	for _, p := range parts {
		switch v := p.(type) {
		case KeyEvent:
			out = append(out, v)
		case []KeyEvent:
			out = append(out, v...)
		default:
			panic("script: unsupported part")
		}
	}
	return out
}
