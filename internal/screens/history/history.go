// Package history lists completed quizzes and best scores.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/lisquiz/lisquiz/internal/bank"
	"github.com/lisquiz/lisquiz/internal/quiz"
	"github.com/lisquiz/lisquiz/internal/router"
	"github.com/lisquiz/lisquiz/internal/screen"
	"github.com/lisquiz/lisquiz/internal/screens/completion"
	"github.com/lisquiz/lisquiz/internal/store"
	"github.com/lisquiz/lisquiz/internal/ui/components"
	"github.com/lisquiz/lisquiz/internal/ui/layout"
	"github.com/lisquiz/lisquiz/internal/ui/theme"
)

// recentLimit is the number of runs listed.
const recentLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummary
	Stats    []store.BankStat
	Err      error
}

// HistoryScreen displays past quiz runs and per-bank bests.
type HistoryScreen struct {
	eventRepo store.EventRepo
	titles    map[string]string
	sessions  []store.SessionSummary
	stats     map[string]store.BankStat
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. banks supplies current titles for runs
// of banks that were renamed since.
func New(eventRepo store.EventRepo, banks []*bank.Bank) *HistoryScreen {
	titles := make(map[string]string, len(banks))
	for _, b := range banks {
		titles[b.ID] = b.Title
	}
	return &HistoryScreen{
		eventRepo: eventRepo,
		titles:    titles,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	if repo == nil {
		s.loaded = true
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()

		sessions, err := repo.RecentSessions(ctx, recentLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		stats, err := repo.BankStats(ctx)
		if err != nil {
			return historyLoadedMsg{Sessions: sessions}
		}
		return historyLoadedMsg{Sessions: sessions, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.stats = make(map[string]store.BankStat, len(msg.Stats))
			for _, st := range msg.Stats {
				s.stats[st.BankID] = st
			}
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if s.eventRepo == nil {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  History is turned off.")
	}
	if len(s.sessions) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Pick one and play!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		dateStr := sess.FinishedAt.Format("Jan 02, 2006")
		secs := int(sess.Duration.Seconds())
		durationStr := fmt.Sprintf("%d:%02d", secs/60, secs%60)

		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s  %-20s  %d/%d  %s  %s",
			prefix, dateStr, s.title(sess), sess.Score, sess.Total, strings.TrimSpace(completion.Stars(sess.Score, sess.Total)), durationStr)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderDetails(sess, min(width-8, 60))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderDetails shows the run and the bank's overall record.
func (s *HistoryScreen) renderDetails(sess store.SessionSummary, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	variant, _ := quiz.ParseVariant(sess.Variant)

	lines := []string{
		dim.Render(fmt.Sprintf("%s · played in the %s", variant.Label(), frontendName(sess.Frontend))),
	}
	if st, ok := s.stats[sess.BankID]; ok {
		lines = append(lines,
			dim.Render(fmt.Sprintf("Played %d times · best %d/%d · last %d/%d",
				st.Completed, st.BestScore, st.BestTotal, st.LastScore, st.LastTotal)),
			components.NewProgressBar("Accuracy", st.Accuracy(), true, width).View(),
		)
	}
	return strings.Join(lines, "\n")
}

func (s *HistoryScreen) title(sess store.SessionSummary) string {
	if t := s.titles[sess.BankID]; t != "" {
		return t
	}
	if sess.BankTitle != "" {
		return sess.BankTitle
	}
	return sess.BankID
}

func frontendName(f string) string {
	switch f {
	case "tui":
		return "terminal"
	case "http":
		return "browser"
	case "":
		return "unknown app"
	}
	return f
}

