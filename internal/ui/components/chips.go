package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/lisquiz/lisquiz/internal/ui/theme"
)

// ChipRow is a row of draggable words. In a terminal "dragging" is picking
// a chip with the cursor and dropping it with a key.
type ChipRow struct {
	Chips    []string
	Used     []bool
	Selected int
}

// NewChipRow creates a chip row with the cursor on the first chip.
func NewChipRow(chips []string) ChipRow {
	return ChipRow{Chips: chips, Used: make([]bool, len(chips))}
}

// Move moves the cursor by delta, skipping used chips.
func (r *ChipRow) Move(delta int) {
	if delta == 0 {
		return
	}
	n := len(r.Chips)
	for i := r.Selected + delta; i >= 0 && i < n; i += delta {
		if !r.Used[i] {
			r.Selected = i
			return
		}
	}
}

// Select puts the cursor on chip i if it is still available.
func (r *ChipRow) Select(i int) bool {
	if i < 0 || i >= len(r.Chips) || r.Used[i] {
		return false
	}
	r.Selected = i
	return true
}

// Current returns the chip under the cursor, or "" when every chip is used.
func (r ChipRow) Current() string {
	if r.Selected < 0 || r.Selected >= len(r.Chips) || r.Used[r.Selected] {
		return ""
	}
	return r.Chips[r.Selected]
}

// Use marks the chip with the given value as used and moves the cursor to
// the next available chip.
func (r *ChipRow) Use(value string) {
	for i, c := range r.Chips {
		if c == value && !r.Used[i] {
			r.Used[i] = true
			break
		}
	}
	if r.Current() == "" {
		for i := range r.Chips {
			if !r.Used[i] {
				r.Selected = i
				return
			}
		}
	}
}

// View renders the chips side by side.
func (r ChipRow) View() string {
	parts := make([]string, 0, len(r.Chips))
	for i, c := range r.Chips {
		label := fmt.Sprintf("%d %s", i+1, c)
		switch {
		case r.Used[i]:
			parts = append(parts, theme.Chip.BorderForeground(theme.Border).Foreground(theme.TextDim).Strikethrough(true).Render(label))
		case i == r.Selected:
			parts = append(parts, theme.ChipSelected.Render(label))
		default:
			parts = append(parts, theme.Chip.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
