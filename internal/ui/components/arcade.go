package components

import (
	"charm.land/lipgloss/v2"

	"github.com/lisquiz/lisquiz/internal/ui/theme"
)

// Width bounds of the boxes stacked inside the cabinet.
const (
	minCardWidth = 20
	maxCardWidth = 60
)

// ContentWidth returns the width shared by every box inside a cabinet of
// frameWidth columns, so their borders line up.
func ContentWidth(frameWidth int) int {
	// Cabinet border (2) plus inner padding (4).
	return min(max(frameWidth-6, minCardWidth), maxCardWidth)
}

// CabinetFrame draws the double-line cabinet around content, centred in
// width x height.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard boxes content at content width cw.
func ArcadeCard(content string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw-2).
		Padding(1, 2).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// ArcadeButton draws a home menu entry; the selected one is filled and
// marked with a pointer.
func ArcadeButton(label string, selected bool, width int) string {
	st := lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder())
	if !selected {
		return st.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
	return st.Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		BorderForeground(theme.ArcadeYellow).
		Render("▸ " + label)
}
