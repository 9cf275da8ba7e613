package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines key bindings for both screens. Bindings that do not apply
// to the current screen are disabled so help and matching skip them.
type keyMap struct {
	Quit  key.Binding
	Help  key.Binding
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Start key.Binding
	Pause key.Binding
	Reset key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "toggle help"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "shift+tab"),
			key.WithHelp("←", "minutes"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "tab"),
			key.WithHelp("→", "seconds"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "increase"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "decrease"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("enter/s", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space/p", "pause/play"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r", "esc"),
			key.WithHelp("r", "reset"),
		),
	}
}

// sync enables the bindings that belong to the selector or the countdown screen.
func (k *keyMap) sync(active bool) {
	for _, b := range []*key.Binding{&k.Left, &k.Right, &k.Up, &k.Down, &k.Start} {
		b.SetEnabled(!active)
	}
	k.Pause.SetEnabled(active)
	k.Reset.SetEnabled(active)
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Start, k.Pause, k.Reset, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Start, k.Pause, k.Reset},
		{k.Help, k.Quit},
	}
}
