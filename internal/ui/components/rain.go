package components

import (
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
)

// RainInterval is the delay between two rain frames.
const RainInterval = 80 * time.Millisecond

// emojiWidth is the number of cells an emoji occupies.
const emojiWidth = 2

// RainTickMsg advances the rain with the given ID by one frame.
type RainTickMsg struct {
	ID int
}

var rainSeq atomic.Int64

// NextRainID returns an ID no other rain in the program uses.
func NextRainID() int {
	return int(rainSeq.Add(1))
}

type drop struct {
	x, y, speed int
}

// Rain is an emoji rain: drops fall through a band of the screen and
// disappear at the bottom.
type Rain struct {
	ID    int
	Emoji string
	drops []drop
}

// NewRain creates count drops spread over width columns. Drops start
// above the band so they enter at different times.
func NewRain(id int, emoji string, count, width, height int, rng *rand.Rand) Rain {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(id)))
	}
	cols := max(1, (width-emojiWidth)/emojiWidth)
	r := Rain{ID: id, Emoji: emoji, drops: make([]drop, 0, count)}
	for range count {
		r.drops = append(r.drops, drop{
			x:     rng.IntN(cols) * emojiWidth,
			y:     -rng.IntN(max(1, height*2)),
			speed: 1 + rng.IntN(2),
		})
	}
	return r
}

// Active reports whether any drop is still falling.
func (r Rain) Active() bool {
	return len(r.drops) > 0
}

// Step moves every drop down and drops the ones that left the band.
func (r *Rain) Step(height int) {
	kept := r.drops[:0]
	for _, d := range r.drops {
		d.y += d.speed
		if d.y < height {
			kept = append(kept, d)
		}
	}
	r.drops = kept
}

// Tick schedules the next frame.
func (r Rain) Tick() tea.Cmd {
	id := r.ID
	return tea.Tick(RainInterval, func(time.Time) tea.Msg {
		return RainTickMsg{ID: id}
	})
}

// View renders the band as height lines of width cells.
func (r Rain) View(width, height int) string {
	if height <= 0 {
		return ""
	}
	rows := make([]map[int]bool, height)
	for _, d := range r.drops {
		if d.y < 0 || d.y >= height || d.x+emojiWidth > width {
			continue
		}
		if rows[d.y] == nil {
			rows[d.y] = map[int]bool{}
		}
		rows[d.y][d.x] = true
	}

	lines := make([]string, height)
	for y, row := range rows {
		var b strings.Builder
		for x := 0; x < width; {
			if row[x] {
				b.WriteString(r.Emoji)
				x += emojiWidth
				continue
			}
			b.WriteByte(' ')
			x++
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
