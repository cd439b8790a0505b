package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the tour key bindings.
type KeyMap struct {
	Next key.Binding
	Back key.Binding
	Skip key.Binding
	Use  key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "enter", "l"),
			key.WithHelp("→/enter", "next"),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "back"),
		),
		Skip: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "skip"),
		),
		Use: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "try feature"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "close"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Back, k.Skip, k.Use, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Back}, {k.Skip, k.Use, k.Quit}}
}
