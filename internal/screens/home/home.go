// Package home is the bank picker shown when the program starts.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/lisquiz/lisquiz/internal/bank"
	"github.com/lisquiz/lisquiz/internal/logger"
	"github.com/lisquiz/lisquiz/internal/router"
	"github.com/lisquiz/lisquiz/internal/screen"
	"github.com/lisquiz/lisquiz/internal/screens/history"
	"github.com/lisquiz/lisquiz/internal/screens/play"
	"github.com/lisquiz/lisquiz/internal/store"
	"github.com/lisquiz/lisquiz/internal/ui/components"
	"github.com/lisquiz/lisquiz/internal/ui/layout"
)

// Deps holds what the home screen and the screens it opens need.
type Deps struct {
	Banks []*bank.Bank
	// BankDir is shown when no banks were found.
	BankDir string
	// Repo reads and records history. Optional.
	Repo    store.EventRepo
	Speaker play.Speaker
	Voice   string
}

type statsLoadedMsg struct {
	Stats []store.BankStat
	Err   error
}

// summary is the totals shown in the stats bar.
type summary struct {
	perfect int
	played  int
	banks   int
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps  Deps
	menu  components.Menu
	stats map[string]store.BankStat
	sum   summary
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps, sum: summary{banks: len(deps.Banks)}}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume reloads the stats after a quiz.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.deps.Repo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		stats, err := repo.BankStats(context.Background())
		return statsLoadedMsg{Stats: stats, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		if msg.Err != nil {
			logger.Error("load bank stats", msg.Err)
			return h, nil
		}
		h.applyStats(msg.Stats)
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) applyStats(stats []store.BankStat) {
	h.stats = make(map[string]store.BankStat, len(stats))
	h.sum = summary{banks: len(h.deps.Banks)}
	for _, st := range stats {
		h.stats[st.BankID] = st
		h.sum.played += st.Completed
		if st.BestTotal > 0 && st.BestScore == st.BestTotal {
			h.sum.perfect++
		}
	}
	selected := h.menu.Selected
	h.menu = components.NewMenu(h.menuItems())
	h.menu.Selected = selected
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(h.deps.Banks)+2)
	for _, b := range h.deps.Banks {
		items = append(items, components.MenuItem{
			Label:  b.Title,
			Hint:   h.bankHint(b),
			Action: h.playAction(b),
		})
	}
	items = append(items,
		components.MenuItem{Label: "HISTORY", Hint: "Past quizzes and best scores", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(h.deps.Repo, h.deps.Banks)}
			}
		}},
		components.MenuItem{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	return items
}

func (h *HomeScreen) playAction(b *bank.Bank) func() tea.Cmd {
	return func() tea.Cmd {
		s := play.New(play.Deps{
			Bank:    b,
			Repo:    h.deps.Repo,
			Speaker: h.deps.Speaker,
			Voice:   h.deps.Voice,
		})
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) bankHint(b *bank.Bank) string {
	parts := []string{b.Variant.Label(), fmt.Sprintf("%d questions", len(b.Items))}
	if st, ok := h.stats[b.ID]; ok && st.Completed > 0 {
		parts = append(parts, fmt.Sprintf("best %d/%d", st.BestScore, st.BestTotal))
	}
	return strings.Join(parts, " · ")
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(h.sum), cw))
	}
	sections = append(sections, renderStatsBar(h.sum, cw, compact))
	if len(h.deps.Banks) == 0 {
		sections = append(sections, renderEmptyBanner(h.deps.BankDir, cw))
	}
	sections = append(sections, renderMenu(h.menu.Items, h.menu.Selected, cw, compact))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose quiz"},
		{Key: "Enter", Description: "Play"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
