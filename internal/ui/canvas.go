package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Layout of the fixed chrome.
const (
	frameWidth   = 76
	frameHeight  = 23
	contentLeft  = 3
	contentTop   = 3
	feedbackRow  = frameHeight - 2
	contentWidth = frameWidth - 2*contentLeft
	// fieldIndent is where a form value starts: marker, label column, space.
	fieldIndent = 2 + 18 + 1
)

// canvas writes content rows top to bottom inside the frame.
type canvas struct {
	d   Display
	row int
}

func (cv *canvas) line(color Color, format string, args ...any) {
	if cv.row >= feedbackRow-1 {
		return
	}
	cv.d.SetForeground(color)
	cv.d.PutText(contentLeft, cv.row, clip(fmt.Sprintf(format, args...), contentWidth))
	cv.row++
}

func (cv *canvas) blank() { cv.row++ }

// option draws one selectable row with a marker when selected.
func (cv *canvas) option(selected bool, format string, args ...any) {
	if selected {
		cv.line(ColorHighlight, "> "+format, args...)
		return
	}
	cv.line(ColorDefault, "  "+format, args...)
}

func (cv *canvas) menu(m Menu) {
	for i, item := range m.Items {
		cv.option(i == m.Selected, "%s", item)
	}
}

func (cv *canvas) form(f *Form) {
	for i, field := range f.Fields {
		value := field.Shown()
		if field.isChoice() {
			value = "< " + value + " >"
		}
		if i != f.Focus {
			cv.option(false, "%-18s %s", field.Label+":", value)
			continue
		}
		chunks := wrapRunes(value, contentWidth-fieldIndent)
		cv.option(true, "%-18s %s", field.Label+":", chunks[0])
		for _, rest := range chunks[1:] {
			cv.line(ColorHighlight, "%*s%s", fieldIndent, "", rest)
		}
	}
	cv.blank()
	var b strings.Builder
	for i, name := range f.Buttons {
		if i > 0 {
			b.WriteString("   ")
		}
		if i == f.FocusedButton() {
			b.WriteString("[>" + name + "<]")
		} else {
			b.WriteString("[ " + name + " ]")
		}
	}
	color := ColorDefault
	if f.FocusedButton() >= 0 {
		color = ColorHighlight
	}
	cv.line(color, "%s", b.String())
}

func drawFrame(d Display, title string) {
	d.SetForeground(ColorMuted)
	horizontal := "+" + strings.Repeat("-", frameWidth-2) + "+"
	d.PutText(0, 0, horizontal)
	for y := 1; y < frameHeight-1; y++ {
		d.PutText(0, y, "|")
		d.PutText(frameWidth-1, y, "|")
	}
	d.PutText(0, frameHeight-1, horizontal)

	d.SetForeground(ColorTitle)
	d.PutText(contentLeft, 1, clip(strings.ToUpper(title), contentWidth))
}

func clip(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-1]) + "…"
}

// paragraph word-wraps text to the content width.
func (cv *canvas) paragraph(color Color, text string) {
	var line []string
	width := 0
	for _, word := range strings.Fields(text) {
		n := utf8.RuneCountInString(word)
		if width > 0 && width+1+n > contentWidth {
			cv.line(color, "%s", strings.Join(line, " "))
			line, width = nil, 0
		}
		if width > 0 {
			width++
		}
		line = append(line, word)
		width += n
	}
	if len(line) > 0 {
		cv.line(color, "%s", strings.Join(line, " "))
	}
}

// wrapRunes splits s into pieces of at most width runes. The focused field
// is shown whole so typed text never scrolls out of sight.
func wrapRunes(s string, width int) []string {
	r := []rune(s)
	if len(r) <= width {
		return []string{s}
	}
	var out []string
	for len(r) > width {
		out = append(out, string(r[:width]))
		r = r[width:]
	}
	if len(r) > 0 {
		out = append(out, string(r))
	}
	return out
}
