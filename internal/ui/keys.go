package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap contains all keyboard shortcuts for the timer list
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Stop   key.Binding
	New    key.Binding
	Log    key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// NewKeyMap creates a KeyMap with the default bindings
func NewKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new timer"),
		),
		Log: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "log time"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings for the bottom bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Stop, k.New, k.Log, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Toggle, k.Stop, k.New},
		{k.Log, k.Help, k.Quit},
	}
}
