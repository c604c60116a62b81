// Package app wires the screens into a Bubble Tea program.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lisquiz/lisquiz/internal/router"
	"github.com/lisquiz/lisquiz/internal/screen"
	"github.com/lisquiz/lisquiz/internal/screens/home"
	"github.com/lisquiz/lisquiz/internal/screens/play"
	"github.com/lisquiz/lisquiz/internal/ui/components"
	"github.com/lisquiz/lisquiz/internal/ui/layout"
)

// Options holds dependencies injected into the app.
type Options = home.Deps

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
	// direct is set when the program opened a single quiz; going home
	// then leaves the program.
	direct bool
}

// newAppModel creates a new AppModel with the home screen, or with the
// play screen of a single bank when start is set.
func newAppModel(opts Options, start string) AppModel {
	if start != "" {
		for _, b := range opts.Banks {
			if b.ID == start {
				root := play.New(play.Deps{Bank: b, Repo: opts.Repo, Speaker: opts.Speaker, Voice: opts.Voice})
				return AppModel{router: router.New(root), direct: true}
			}
		}
	}
	return AppModel{router: router.New(home.New(opts))}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Screens size their effects to the window.
		return m, m.router.Update(msg)

	case router.PopScreenMsg:
		if m.direct && m.router.Depth() == 1 {
			closeAll(m.router)
			return m, tea.Quit
		}

	case router.PopToRootMsg:
		if m.direct {
			closeAll(m.router)
			return m, tea.Quit
		}

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			closeAll(m.router)
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			if m.direct {
				closeAll(m.router)
				return m, tea.Quit
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// closeAll releases the resources of the active screen before exit.
func closeAll(r *router.Router) {
	r.PopToRoot()
	if c, ok := r.Active().(screen.Closer); ok {
		c.Close()
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	status := ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		up, choose := components.DefaultMenuKeys.Up.Help(), components.DefaultMenuKeys.Choose.Help()
		footerHints = []layout.KeyHint{
			{Key: up.Key, Description: up.Desc},
			{Key: choose.Key, Description: choose.Desc},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(0, m.height-headerHeight-footerHeight)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program on the home screen. When start names a
// bank, that quiz opens directly and Esc leaves the program. Run returns
// when the program exits or ctx is cancelled.
func Run(ctx context.Context, opts Options, start string) error {
	p := tea.NewProgram(newAppModel(opts, start), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
