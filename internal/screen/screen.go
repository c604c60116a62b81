// Package screen declares what the router needs from a screen. Besides
// Screen, a screen may implement any of the optional interfaces below;
// the app and router check for them with type assertions.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/lisquiz/lisquiz/internal/ui/layout"
)

// Screen is one page of the TUI: home, a quiz, its completion card, or
// a notice. Screens are values owned by the router stack.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	// View renders the area between header and footer.
	View(width, height int) string
	// Title is shown in the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show a status,
// such as a running score, on the right of the header.
type StatusProvider interface {
	Status() string
}

// Closer is implemented by screens that hold resources, such as speech in
// flight, that must be released when they leave the stack.
type Closer interface {
	Close()
}

// Resumer is implemented by screens that refresh themselves when they
// become active again after the screens above them were popped.
type Resumer interface {
	Resume() tea.Cmd
}
