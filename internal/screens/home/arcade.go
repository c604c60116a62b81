package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/lisquiz/lisquiz/internal/ui/components"
	"github.com/lisquiz/lisquiz/internal/ui/theme"
)

const arcadeTitleFull = ` ██╗     ██╗███████╗ ██████╗ ██╗   ██╗██╗███████╗
 ██║     ██║██╔════╝██╔═══██╗██║   ██║██║╚══███╔╝
 ██║     ██║███████╗██║   ██║██║   ██║██║  ███╔╝
 ██║     ██║╚════██║██║▄▄ ██║██║   ██║██║ ███╔╝
 ███████╗██║███████║╚██████╔╝╚██████╔╝██║███████╗
 ╚══════╝╚═╝╚══════╝ ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝`

const arcadeTitleCompact = "L · I · S · Q · U · I · Z"

// maxButtons is the most menu entries drawn as bordered buttons.
const maxButtons = 5

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders the play stats in a bordered box matching content width.
func renderStatsBar(st summary, cw int, compact bool) string {
	perfectStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	playedStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	banksStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			perfectStyle.Render(fmt.Sprintf("★%d", st.perfect)),
			playedStyle.Render(fmt.Sprintf("✔%d", st.played)),
			banksStyle.Render(fmt.Sprintf("◆%d", st.banks)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			perfectStyle.Render(fmt.Sprintf("★ %d PERFECT", st.perfect)),
			playedStyle.Render(fmt.Sprintf("✔ %d PLAYED", st.played)),
			banksStyle.Render(fmt.Sprintf("◆ %d QUIZZES", st.banks)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderMenu draws a short menu as arcade buttons and a long one as lines
// with hints.
func renderMenu(items []components.MenuItem, selected int, cw int, compact bool) string {
	if compact || len(items) > maxButtons {
		return renderMenuCompact(items, selected, cw)
	}
	buttonWidth := min(cw-4, 30)
	var buttons []string
	for i, item := range items {
		buttons = append(buttons, components.ArcadeButton(item.Label, i == selected, buttonWidth))
	}
	block := strings.Join(buttons, "\n")
	if hint := items[selected].Hint; hint != "" {
		block += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(hint)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderMenuCompact renders menu items as simple text lines (no borders)
// for long bank lists and small terminals.
func renderMenuCompact(items []components.MenuItem, selected int, cw int) string {
	var lines []string
	for i, item := range items {
		var line string
		if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + item.Label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + item.Label)
		}
		if item.Hint != "" {
			line += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(item.Hint)
		}
		lines = append(lines, line)
	}
	return components.ArcadeCard(strings.Join(lines, "\n"), cw)
}

// renderEmptyBanner tells the player where banks are looked up.
func renderEmptyBanner(dir string, cw int) string {
	text := "No quizzes found. Add .yaml or .json banks"
	if dir != "" {
		text += " to " + dir
	}
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + text)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
