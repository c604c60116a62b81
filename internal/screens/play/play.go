// Package play is the terminal quiz screen. It drives a quiz.Session and
// is the session's presenter.
package play

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/lisquiz/lisquiz/internal/bank"
	"github.com/lisquiz/lisquiz/internal/logger"
	"github.com/lisquiz/lisquiz/internal/quiz"
	"github.com/lisquiz/lisquiz/internal/router"
	"github.com/lisquiz/lisquiz/internal/screen"
	"github.com/lisquiz/lisquiz/internal/screens/completion"
	"github.com/lisquiz/lisquiz/internal/screens/notice"
	"github.com/lisquiz/lisquiz/internal/speech"
	"github.com/lisquiz/lisquiz/internal/store"
	"github.com/lisquiz/lisquiz/internal/ui/components"
	"github.com/lisquiz/lisquiz/internal/ui/layout"
)

// Frontend is the frontend name recorded in quiz history.
const Frontend = "tui"

// Speaker speaks audio cues. *speech.Speaker satisfies it.
type Speaker interface {
	Speak(text string, opts speech.Options) error
	Stop()
}

// Deps holds what a play screen needs.
type Deps struct {
	Bank *bank.Bank
	// Repo records history. Optional.
	Repo store.EventRepo
	// Speaker speaks audio cues. Nil means speech is unsupported.
	Speaker Speaker
	// Voice is the preferred voice when the bank names none.
	Voice string
	// Shuffle overrides the chip order of sort questions. Optional.
	Shuffle func([]string)
}

// PlayScreen implements screen.Screen for one quiz run.
type PlayScreen struct {
	bank    *bank.Bank
	speaker Speaker
	tracker *store.Tracker
	session *quiz.Session
	notice  string
	started bool

	question quiz.Question
	index    int
	total    int
	options  components.OptionList
	chips    components.ChipRow
	targets  []target
	onSelect func(string)
	onDrop   func(quiz.Side, string)

	feedback    string
	sentiment   quiz.Sentiment
	explanation string
	nav         quiz.Navigation
	speaking    string
	rain        components.Rain
	width       int

	done       bool
	score      int
	finale     *quiz.Celebration
	pendingCmd []tea.Cmd
}

// target is a drop box as drawn on screen.
type target struct {
	box   quiz.Side
	label string
	value string
	mark  components.Mark
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.StatusProvider = (*PlayScreen)(nil)
var _ screen.Closer = (*PlayScreen)(nil)
var _ quiz.Presenter = (*PlayScreen)(nil)

// New creates a play screen for deps.Bank. A bank that cannot be played
// yields a screen that replaces itself with a notice on Init.
func New(deps Deps) *PlayScreen {
	s := &PlayScreen{
		bank:    deps.Bank,
		speaker: deps.Speaker,
		width:   layout.MinWidth,
	}
	s.tracker = store.NewTracker(deps.Repo, deps.Bank.ID, deps.Bank.Title, deps.Bank.Variant, Frontend)

	cfg := deps.Bank.Config()
	if cfg.Voice == "" {
		cfg.Voice = deps.Voice
	}
	cfg.Shuffle = deps.Shuffle
	cfg.Listener = s.tracker

	qs, err := quiz.NewSession(cfg, deps.Bank.Questions(), s)
	if err != nil {
		logger.Warn("bank cannot be played", logrus.Fields{"bank": deps.Bank.ID, "error": err.Error()})
		return s
	}
	s.session = qs
	return s
}

func (s *PlayScreen) Init() tea.Cmd {
	if s.session == nil {
		next := notice.New(s.bank.Title, s.notice)
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	if !s.started {
		s.started = true
		s.tracker.Start(s.session.Total())
		s.session.Start()
	}
	return s.flush()
}

func (s *PlayScreen) Title() string {
	return s.bank.Title
}

// Status shows the running score.
func (s *PlayScreen) Status() string {
	if s.session == nil {
		return ""
	}
	return fmt.Sprintf("★ %d/%d", s.session.Score(), s.session.Total())
}

// Session returns the running session, or nil when the bank could not be
// played.
func (s *PlayScreen) Session() *quiz.Session {
	return s.session
}

// Close stops speech in flight when the screen leaves the stack.
func (s *PlayScreen) Close() {
	if s.speaker != nil {
		s.speaker.Stop()
	}
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	if s.session == nil {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	hints := []layout.KeyHint{}
	switch s.session.Variant() {
	case quiz.VariantBlank:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓/1-9", Description: "Pick word"},
			layout.KeyHint{Key: "Enter", Description: "Drop"},
		)
	case quiz.VariantSort:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓/1-9", Description: "Pick word"},
			layout.KeyHint{Key: "←→", Description: "Drop"},
		)
	case quiz.VariantAudio:
		hints = append(hints,
			hint(keys.Listen),
			layout.KeyHint{Key: "1-9", Description: "Answer"},
		)
	default:
		hints = append(hints, layout.KeyHint{Key: "1-9", Description: "Answer"})
	}
	if s.nav.Back {
		hints = append(hints, hint(keys.Back))
	}
	if s.nav.Next {
		next := hint(keys.Next)
		if s.nav.Last {
			next.Description = "Finish"
		}
		hints = append(hints, next)
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		return s, nil

	case components.RainTickMsg:
		if msg.ID != s.rain.ID || !s.rain.Active() {
			return s, nil
		}
		s.rain.Step(skyHeight)
		if s.rain.Active() {
			return s, s.rain.Tick()
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PlayScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.session == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch {
	case key.Matches(msg, keys.Next):
		s.session.Advance()
		return s, s.afterAction()
	case key.Matches(msg, keys.Back):
		s.session.Retreat()
		return s, s.afterAction()
	case key.Matches(msg, keys.Listen):
		s.session.Play()
		return s, s.afterAction()
	}

	if v := s.session.Variant(); v == quiz.VariantBlank || v == quiz.VariantSort {
		return s.handleDragKey(msg)
	}
	return s.handleChoiceKey(msg)
}

// handleChoiceKey drives the choice and audio variants.
func (s *PlayScreen) handleChoiceKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		s.options.Move(-1)
	case key.Matches(msg, keys.Down):
		s.options.Move(1)
	case key.Matches(msg, keys.Enter):
		if s.session.Answered() {
			s.session.Advance()
		} else {
			s.selectOption(s.options.Current())
		}
		return s, s.afterAction()
	default:
		if i, ok := digit(msg.String()); ok && i < len(s.options.Options) {
			s.options.Selected = i
			s.selectOption(s.options.Options[i])
			return s, s.afterAction()
		}
	}
	return s, nil
}

// handleDragKey drives the blank and sort variants: the cursor picks a
// chip and a key drops it into a box.
func (s *PlayScreen) handleDragKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		s.chips.Move(-1)
	case key.Matches(msg, keys.Down):
		s.chips.Move(1)
	case key.Matches(msg, keys.Enter):
		if s.session.Answered() {
			s.session.Advance()
			return s, s.afterAction()
		}
		if s.session.Variant() == quiz.VariantBlank {
			s.drop(quiz.SideBlank)
			return s, s.afterAction()
		}
	case key.Matches(msg, keys.Left):
		s.drop(quiz.SideLeft)
		return s, s.afterAction()
	case key.Matches(msg, keys.Right):
		s.drop(quiz.SideRight)
		return s, s.afterAction()
	default:
		if i, ok := digit(msg.String()); ok {
			s.chips.Select(i)
		}
	}
	return s, nil
}

func (s *PlayScreen) selectOption(value string) {
	if s.onSelect != nil && value != "" {
		s.onSelect(value)
	}
}

func (s *PlayScreen) drop(box quiz.Side) {
	if s.onDrop == nil {
		return
	}
	if word := s.chips.Current(); word != "" {
		s.onDrop(box, word)
	}
}

// afterAction collects the commands the presenter queued and moves to the
// completion screen once the session is over.
func (s *PlayScreen) afterAction() tea.Cmd {
	cmd := s.flush()
	if !s.done {
		return cmd
	}
	next := completion.New(completion.Result{
		BankTitle:   s.bank.Title,
		Score:       s.score,
		Total:       s.total,
		Celebration: s.finale,
	})
	return tea.Batch(cmd, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} })
}

func (s *PlayScreen) flush() tea.Cmd {
	if len(s.pendingCmd) == 0 {
		return nil
	}
	cmds := s.pendingCmd
	s.pendingCmd = nil
	return tea.Batch(cmds...)
}

// digit maps "1".."9" to 0..8.
func digit(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '1'), true
}
