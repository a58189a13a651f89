package exam

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Pick   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Yes    key.Binding
	No     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Pick:   key.NewBinding(key.WithKeys("enter")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h")),
		Submit: key.NewBinding(key.WithKeys("ctrl+s", "s")),
		Yes:    key.NewBinding(key.WithKeys("y", "Y", "enter")),
		No:     key.NewBinding(key.WithKeys("n", "N", "esc")),
	}
}

// textKeys are the bindings that stay active while a free-text answer is
// being typed; letters and arrows belong to the input then.
func textKeys() keyMap {
	k := defaultKeys()
	k.Next = key.NewBinding(key.WithKeys("tab"))
	k.Prev = key.NewBinding(key.WithKeys("shift+tab"))
	k.Submit = key.NewBinding(key.WithKeys("ctrl+s"))
	k.Up = key.NewBinding(key.WithKeys("up"))
	k.Down = key.NewBinding(key.WithKeys("down"))
	return k
}
