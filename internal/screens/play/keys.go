package play

import (
	"charm.land/bubbles/v2/key"

	"github.com/lisquiz/lisquiz/internal/ui/layout"
)

type keyMap struct {
	Next   key.Binding
	Back   key.Binding
	Listen key.Binding
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Left   key.Binding
	Right  key.Binding
}

var keys = keyMap{
	Next:   key.NewBinding(key.WithKeys("n"), key.WithHelp("N", "Next")),
	Back:   key.NewBinding(key.WithKeys("b"), key.WithHelp("B", "Back")),
	Listen: key.NewBinding(key.WithKeys("p", "space"), key.WithHelp("P", "Listen")),
	Up:     key.NewBinding(key.WithKeys("up", "k", "shift+tab")),
	Down:   key.NewBinding(key.WithKeys("down", "j", "tab")),
	Enter:  key.NewBinding(key.WithKeys("enter")),
	Left:   key.NewBinding(key.WithKeys("left", "h")),
	Right:  key.NewBinding(key.WithKeys("right", "l")),
}

// hint turns a binding's help into a footer hint.
func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}
