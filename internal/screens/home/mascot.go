package home

import (
	"charm.land/lipgloss/v2"

	"github.com/lisquiz/lisquiz/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, star eyes: a perfect score was reached
	MascotSleepy                           // Dim, closed eyes: nothing played yet
)

const mascotIdle = `  ,___,
 ( ◉ ◉ )
 (  ▽  )
 ─"─"─"─`

const mascotCelebrating = `\ ,___, /
 ( ★ ★ )
 (  ▿  )
 ─"─"─"─`

const mascotSleepy = `  ,___,   z
 ( − − ) z
 (  ▽  )
 ─"─"─"─`

// RenderMascot returns the owl art for the given variant.
func RenderMascot(variant MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch variant {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotSleepy:
		art = mascotSleepy
		fg = theme.TextDim
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

// mascotFor picks the mascot for the play summary.
func mascotFor(st summary) MascotVariant {
	switch {
	case st.played == 0:
		return MascotSleepy
	case st.perfect > 0:
		return MascotCelebrating
	}
	return MascotIdle
}
