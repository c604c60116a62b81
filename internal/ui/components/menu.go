package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lisquiz/lisquiz/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Disabled entries are drawn but never
// selected.
type MenuItem struct {
	Label    string
	Hint     string // dimmed, after the label
	Action   func() tea.Cmd
	Disabled bool
}

// MenuKeys are the bindings a Menu reacts to.
type MenuKeys struct {
	Up, Down, Choose key.Binding
}

// DefaultMenuKeys moves with the arrows or j/k and chooses with Enter.
var DefaultMenuKeys = MenuKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Navigate")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Select")),
}

// Menu is a vertical list of actions.
type Menu struct {
	Items    []MenuItem
	Selected int
	Keys     MenuKeys
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Keys: DefaultMenuKeys}
	if i := m.step(-1, 1); i >= 0 {
		m.Selected = i
	}
	return m
}

// step returns the next enabled index after from in direction dir, or -1.
func (m Menu) step(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(kmsg, m.Keys.Up):
		if i := m.step(m.Selected, -1); i >= 0 {
			m.Selected = i
		}
	case key.Matches(kmsg, m.Keys.Down):
		if i := m.step(m.Selected, 1); i >= 0 {
			m.Selected = i
		}
	case key.Matches(kmsg, m.Keys.Choose):
		if m.Selected < 0 || m.Selected >= len(m.Items) {
			break
		}
		if it := m.Items[m.Selected]; it.Action != nil && !it.Disabled {
			return m, it.Action()
		}
	}
	return m, nil
}

// View draws one line per item with a pointer at the selection.
func (m Menu) View() string {
	hintStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	var b strings.Builder
	for i, it := range m.Items {
		var line string
		switch {
		case it.Disabled:
			line = theme.Disabled.Render("    " + it.Label)
		case i == m.Selected:
			line = theme.Selected.Render("  ▸ " + it.Label)
		default:
			line = theme.Unselected.Render("    " + it.Label)
		}
		if it.Hint != "" && !it.Disabled {
			line += "  " + hintStyle.Render(it.Hint)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
