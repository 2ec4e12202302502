package ui

import (
	"strings"
	"unicode/utf8"
)

// Field length limits.
const (
	MaxCredentialLen = 30
	MaxTextLen       = 165
)

// Field is one editable buffer of a Form. A field with Choices is a selector:
// Left/Right cycle its value and typing is ignored.
type Field struct {
	Label   string
	Value   string
	Max     int
	Masked  bool
	Choices []string
	choice  int
}

func (f *Field) isChoice() bool { return len(f.Choices) > 0 }

// Shown returns the text to draw for the field.
func (f *Field) Shown() string {
	if f.Masked {
		return strings.Repeat("*", utf8.RuneCountInString(f.Value))
	}
	return f.Value
}

func (f *Field) cycle(step int) {
	n := len(f.Choices)
	f.choice = (f.choice + step + n) % n
	f.Value = f.Choices[f.choice]
}

// FormAction is the outcome of one key press on a form.
type FormAction int

const (
	FormNone FormAction = iota
	FormButton
	FormCancel
)

// Form is a set of fields followed by buttons, with one focus index running
// over both. Up/Down clamp at the ends.
type Form struct {
	Fields  []*Field
	Buttons []string
	Focus   int
}

func NewForm(buttons []string, fields ...*Field) *Form {
	for _, f := range fields {
		if f.isChoice() {
			f.Value = f.Choices[f.choice]
		}
		if f.Max == 0 {
			f.Max = MaxCredentialLen
		}
	}
	return &Form{Fields: fields, Buttons: buttons}
}

// Value returns the text of field i.
func (f *Form) Value(i int) string { return f.Fields[i].Value }

// FocusedButton returns the focused button index, or -1 when a field has focus.
func (f *Form) FocusedButton() int {
	if f.Focus < len(f.Fields) {
		return -1
	}
	return f.Focus - len(f.Fields)
}

// Handle applies ev. On FormButton, button is the index of the pressed button.
func (f *Form) Handle(ev KeyEvent) (action FormAction, button int) {
	last := len(f.Fields) + len(f.Buttons) - 1
	var field *Field
	if f.Focus < len(f.Fields) {
		field = f.Fields[f.Focus]
	}

	switch ev.Key {
	case KeyEscape:
		return FormCancel, 0
	case KeyArrowUp:
		if f.Focus > 0 {
			f.Focus--
		}
	case KeyArrowDown:
		if f.Focus < last {
			f.Focus++
		}
	case KeyArrowLeft, KeyArrowRight:
		if field != nil && field.isChoice() {
			step := 1
			if ev.Key == KeyArrowLeft {
				step = -1
			}
			field.cycle(step)
		}
	case KeyEnter:
		if b := f.FocusedButton(); b >= 0 {
			return FormButton, b
		}
	case KeyBackspace:
		if field != nil && !field.isChoice() && field.Value != "" {
			_, size := utf8.DecodeLastRuneInString(field.Value)
			field.Value = field.Value[:len(field.Value)-size]
		}
	case KeyCharacter:
		if field != nil && !field.isChoice() && utf8.RuneCountInString(field.Value) < field.Max {
			field.Value += string(ev.Rune)
		}
	}
	return FormNone, 0
}
