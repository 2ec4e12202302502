package ui

// Menu is a vertical list of options. Up/Down wrap around.
type Menu struct {
	Items    []string
	Selected int
}

func NewMenu(items ...string) Menu {
	return Menu{Items: items}
}

// Handle moves the selection and reports the chosen index on Enter.
func (m *Menu) Handle(ev KeyEvent) (chosen int, ok bool) {
	n := len(m.Items)
	if n == 0 {
		return 0, false
	}
	switch ev.Key {
	case KeyArrowUp:
		m.Selected = (m.Selected - 1 + n) % n
	case KeyArrowDown:
		m.Selected = (m.Selected + 1) % n
	case KeyEnter:
		return m.Selected, true
	}
	return 0, false
}
