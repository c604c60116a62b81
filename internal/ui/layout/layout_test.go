package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{MinWidth, MinHeight, false},
		{MinWidth - 1, MinHeight, true},
		{MinWidth, MinHeight - 1, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Colors", "Score: 2", 80)
	for _, want := range []string{appName, "Colors", "Score: 2"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q:\n%s", want, h)
		}
	}
	if lipgloss.Height(h) != 3 {
		t.Errorf("height = %d, want a one-line bar", lipgloss.Height(h))
	}
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "N", Description: "Next"}, {Key: "Esc", Description: "Back"}}, 60)
	if !strings.Contains(f, "Next") || !strings.Contains(f, "Esc") {
		t.Errorf("footer missing hints:\n%s", f)
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("t", "", 60)
	footer := RenderFooter(nil, 60)
	frame := RenderFrame(header, "body", footer, 60, 24)
	if got := lipgloss.Height(frame); got != 24 {
		t.Errorf("height = %d, want 24", got)
	}
}
