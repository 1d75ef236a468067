package picker

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up     key.Binding
	down   key.Binding
	accept key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "ctrl+p")),
		down:   key.NewBinding(key.WithKeys("down", "ctrl+n")),
		accept: key.NewBinding(key.WithKeys("enter")),
		quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c")),
	}
}
