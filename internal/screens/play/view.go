package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/lisquiz/lisquiz/internal/quiz"
	"github.com/lisquiz/lisquiz/internal/screens/notice"
	"github.com/lisquiz/lisquiz/internal/ui/components"
	"github.com/lisquiz/lisquiz/internal/ui/theme"
)

// skyHeight is the number of lines the celebration rain falls through.
const skyHeight = 3

// blankWidth is the width of an empty fill-the-blank box.
const blankWidth = 7

func (s *PlayScreen) View(width, height int) string {
	if s.session == nil {
		return notice.Render(width, height, s.notice)
	}

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	var b strings.Builder

	// Info line.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + s.session.Variant().Label())
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d", s.index+1, s.total))
	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 2; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-2))))
	b.WriteString("\n")

	b.WriteString(s.rain.View(width, skyHeight))
	b.WriteString("\n")

	b.WriteString(center.Foreground(theme.Text).Bold(true).Render(s.renderPrompt()))
	b.WriteString("\n")
	if s.question.Image != "" {
		alt := s.question.Alt
		if alt == "" {
			alt = s.question.Image
		}
		b.WriteString(center.Foreground(theme.TextDim).Render("🖼  " + alt))
		b.WriteString("\n")
	}
	if s.session.Variant() == quiz.VariantAudio {
		cue := "🔈 Press P to listen"
		if s.speaking != "" {
			cue = "🔊 Listening..."
		}
		b.WriteString(center.Foreground(theme.ArcadeCyan).Render(cue))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch s.session.Variant() {
	case quiz.VariantSort:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderBoxes()))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.chips.View()))
	case quiz.VariantBlank:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.chips.View()))
	default:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.options.View()))
	}
	b.WriteString("\n\n")

	if s.feedback != "" {
		color := theme.Success
		if s.sentiment == quiz.SentimentNegative {
			color = theme.Error
		}
		b.WriteString(center.Foreground(color).Bold(true).Render(s.feedback))
		b.WriteString("\n")
	}
	if s.explanation != "" {
		exp := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(s.explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderNavigation()))

	return b.String()
}

// renderPrompt draws the prompt, with the blank box in place of the gap.
func (s *PlayScreen) renderPrompt() string {
	if s.session.Variant() != quiz.VariantBlank {
		return s.question.Prompt
	}
	var t target
	if len(s.targets) > 0 {
		t = s.targets[0]
	}
	before, after, ok := quiz.SplitBlank(s.question.Prompt)
	if !ok {
		return before + " " + renderSlot(t, blankWidth)
	}
	return before + renderSlot(t, blankWidth) + after
}

func renderSlot(t target, width int) string {
	text := t.value
	if text == "" {
		text = strings.Repeat("_", width)
	}
	switch t.mark {
	case components.MarkCorrect:
		return theme.Correct.Render("[" + text + "]")
	case components.MarkIncorrect:
		return theme.Incorrect.Render("[" + text + "]")
	}
	return lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render("[" + text + "]")
}

// renderBoxes draws the two sort boxes side by side.
func (s *PlayScreen) renderBoxes() string {
	boxes := make([]string, 0, len(s.targets))
	for _, t := range s.targets {
		arrow := "←"
		if t.box == quiz.SideRight {
			arrow = "→"
		}
		content := t.value
		switch t.mark {
		case components.MarkCorrect:
			content = theme.Correct.Render(content + " ✓")
		case components.MarkIncorrect:
			content = theme.Incorrect.Render(content + " ✗")
		default:
			content = lipgloss.NewStyle().Foreground(theme.TextDim).Render("drop here")
		}
		label := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render(arrow + " " + t.label)
		boxes = append(boxes, theme.DropBox.Render(label+"\n\n"+content))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (s *PlayScreen) renderNavigation() string {
	back := components.NewButton("B", "Back", s.nav.Back)
	back.Hidden = !s.nav.Back
	label := "Next"
	if s.nav.Last {
		label = "Finish"
	}
	next := components.NewButton("N", label, s.nav.Next)
	next.Hidden = !s.nav.Next
	return lipgloss.JoinHorizontal(lipgloss.Center, back.View(), "  ", next.View())
}
