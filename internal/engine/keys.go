package engine

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keys the engine consumes while a presentation holds
// input.
type KeyMap struct {
	Dismiss key.Binding
	Prev    key.Binding
	Next    key.Binding
	Fire    key.Binding
	Pick    key.Binding // Digits 1-9 fire the N-th action
	Quit    key.Binding // Always passed through to the host
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Fire, k.Dismiss}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Fire, k.Pick},
		{k.Dismiss, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "up", "shift+tab"),
			key.WithHelp("←/↑", "previous action"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "down", "tab"),
			key.WithHelp("→/↓", "next action"),
		),
		Fire: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "choose"),
		),
		Pick: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "choose action"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
