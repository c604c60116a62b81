// Package layout renders the frame shared by every screen: a header bar,
// the screen content, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/lisquiz/lisquiz/internal/ui/theme"
)

// Smallest terminal a quiz fits in: four option rows, the header and
// footer bars, and the feedback line.
const (
	MinWidth  = 60
	MinHeight = 20
)

const appName = "LisQuiz"

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the player to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	text := fmt.Sprintf("Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(text)
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader shows the app name on the left, title centred, and
// status, such as a running score, on the right. status may be empty.
func RenderHeader(title, status string, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  " + appName)
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	end := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	// Two columns of border and two of padding.
	inner := max(width-4, 0)
	nw, mw, ew := lipgloss.Width(name), lipgloss.Width(mid), lipgloss.Width(end)
	gapL := max((inner-mw)/2-nw, 1)
	gapR := max(inner-nw-gapL-mw-ew, 1)

	return bar(width).Render(name + strings.Repeat(" ", gapL) + mid + strings.Repeat(" ", gapR) + end)
}

// RenderFooter lists hints left to right.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("  ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description))
	}
	return bar(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the height left between the bars.
func RenderFrame(header, content, footer string, width, height int) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(h).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
