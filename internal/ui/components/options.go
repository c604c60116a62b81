package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/lisquiz/lisquiz/internal/ui/theme"
)

// Mark is the result shown next to an option or chip.
type Mark int

const (
	MarkNone Mark = iota
	MarkCorrect
	MarkIncorrect
)

// OptionList is a numbered list of answer options with a cursor.
type OptionList struct {
	Options  []string
	Marks    []Mark
	Selected int
	// Locked disables the cursor once the question is answered.
	Locked bool
}

// NewOptionList creates an option list with the cursor on the first option.
func NewOptionList(options []string) OptionList {
	return OptionList{
		Options: options,
		Marks:   make([]Mark, len(options)),
	}
}

// Move moves the cursor by delta, clamped to the list.
func (l *OptionList) Move(delta int) {
	if l.Locked || len(l.Options) == 0 {
		return
	}
	l.Selected = max(0, min(len(l.Options)-1, l.Selected+delta))
}

// Current returns the option under the cursor.
func (l OptionList) Current() string {
	if l.Selected < 0 || l.Selected >= len(l.Options) {
		return ""
	}
	return l.Options[l.Selected]
}

// SetMark marks option i. Out-of-range indices are ignored.
func (l *OptionList) SetMark(i int, m Mark) {
	if i >= 0 && i < len(l.Marks) {
		l.Marks[i] = m
	}
}

// View renders the list.
func (l OptionList) View() string {
	var b strings.Builder
	for i, opt := range l.Options {
		prefix := "  "
		if i == l.Selected && !l.Locked {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		switch {
		case l.Marks[i] == MarkCorrect:
			b.WriteString(theme.Correct.Render(line + "  ✓"))
		case l.Marks[i] == MarkIncorrect:
			b.WriteString(theme.Incorrect.Render(line + "  ✗"))
		case l.Locked:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(line))
		case i == l.Selected:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
