// Package notice shows a blocking message in place of a quiz that cannot
// be played.
package notice

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lisquiz/lisquiz/internal/router"
	"github.com/lisquiz/lisquiz/internal/screen"
	"github.com/lisquiz/lisquiz/internal/ui/layout"
	"github.com/lisquiz/lisquiz/internal/ui/theme"
)

// NoticeScreen implements screen.Screen.
type NoticeScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*NoticeScreen)(nil)
var _ screen.KeyHintProvider = (*NoticeScreen)(nil)

// New creates a notice titled after the bank it replaces.
func New(title, message string) *NoticeScreen {
	return &NoticeScreen{title: title, message: message}
}

func (s *NoticeScreen) Init() tea.Cmd { return nil }

func (s *NoticeScreen) Title() string { return s.title }

// Message returns the text shown.
func (s *NoticeScreen) Message() string { return s.message }

func (s *NoticeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "any key", Description: "Back"}}
}

// Update leaves on any key.
func (s *NoticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *NoticeScreen) View(width, height int) string {
	return Render(width, height, s.message)
}

// Render draws message centred in a width x height area.
func Render(width, height int, message string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Error).
		Foreground(theme.Text).
		Padding(1, 3).
		Width(min(width-4, 60)).
		Align(lipgloss.Center).
		Render(message + "\n\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render("Press any key to go back."))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
