package components

import (
	"github.com/lisquiz/lisquiz/internal/ui/theme"
)

// Button is a labelled action in a button row. Hidden buttons render as
// blank space so the row keeps its shape.
type Button struct {
	Key     string
	Label   string
	Enabled bool
	Hidden  bool
}

// NewButton creates a new button.
func NewButton(key, label string, enabled bool) Button {
	return Button{Key: key, Label: label, Enabled: enabled}
}

// View renders the button.
func (b Button) View() string {
	label := "[" + b.Key + "] " + b.Label
	if b.Hidden {
		return theme.ButtonInactive.BorderForeground(theme.BgDark).Foreground(theme.BgDark).Render(label)
	}
	if b.Enabled {
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}
