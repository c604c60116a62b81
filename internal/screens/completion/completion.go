// Package completion shows the final score of a quiz.
package completion

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lisquiz/lisquiz/internal/quiz"
	"github.com/lisquiz/lisquiz/internal/router"
	"github.com/lisquiz/lisquiz/internal/screen"
	"github.com/lisquiz/lisquiz/internal/ui/components"
	"github.com/lisquiz/lisquiz/internal/ui/layout"
	"github.com/lisquiz/lisquiz/internal/ui/theme"
)

// rainHeight is the number of lines the celebration falls through.
const rainHeight = 4

// Result is what the completion screen reports.
type Result struct {
	BankTitle string
	Score     int
	Total     int
	// Celebration is played when the screen opens. Optional.
	Celebration *quiz.Celebration
}

// CompletionScreen displays the end of a quiz.
type CompletionScreen struct {
	result Result
	rain   components.Rain
	width  int
}

var _ screen.Screen = (*CompletionScreen)(nil)
var _ screen.KeyHintProvider = (*CompletionScreen)(nil)

// New creates a new CompletionScreen.
func New(result Result) *CompletionScreen {
	return &CompletionScreen{result: result, width: layout.MinWidth}
}

func (s *CompletionScreen) Init() tea.Cmd {
	c := s.result.Celebration
	if c == nil {
		return nil
	}
	s.rain = components.NewRain(components.NextRainID(), c.Emoji, c.Count, s.width, rainHeight, nil)
	return s.rain.Tick()
}

func (s *CompletionScreen) Title() string {
	return "Quiz Completed"
}

func (s *CompletionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *CompletionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
	case components.RainTickMsg:
		if msg.ID != s.rain.ID || !s.rain.Active() {
			return s, nil
		}
		s.rain.Step(rainHeight)
		if s.rain.Active() {
			return s, s.rain.Tick()
		}
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter", "esc", "space":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *CompletionScreen) View(width, height int) string {
	r := s.result
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(s.rain.View(width, rainHeight))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.ArcadeYellow).Bold(true).Render("Quiz Completed!"))
	b.WriteString("\n\n")
	if r.BankTitle != "" {
		b.WriteString(center.Foreground(theme.TextDim).Render(r.BankTitle))
		b.WriteString("\n\n")
	}
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render(fmt.Sprintf("Your score: %d / %d", r.Score, r.Total)))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Accent).Render(Stars(r.Score, r.Total)))
	b.WriteString("\n\n")

	percent := 0.0
	if r.Total > 0 {
		percent = float64(r.Score) / float64(r.Total)
	}
	bar := components.NewProgressBar("Score", percent, true, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(cheer(r.Score, r.Total)))

	return b.String()
}

// Stars rates a score from one to three stars. An empty quiz gets none.
func Stars(score, total int) string {
	if total <= 0 {
		return ""
	}
	n := 1
	switch ratio := float64(score) / float64(total); {
	case ratio >= 1:
		n = 3
	case ratio >= 0.5:
		n = 2
	}
	return strings.Repeat("★ ", n) + strings.Repeat("☆ ", 3-n)
}

func cheer(score, total int) string {
	switch {
	case total > 0 && score == total:
		return "Perfect! You got every question right."
	case score*2 >= total:
		return "Great job! Play again to beat your score."
	default:
		return "Good try! Practice makes perfect."
	}
}
