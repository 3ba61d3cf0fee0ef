package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap 终端界面快捷键
type KeyMap struct {
	Generate     key.Binding
	Submit       key.Binding
	NextFocus    key.Binding
	Back         key.Binding
	APIKey       key.Binding
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Pin          key.Binding
	Delete       key.Binding
	Expand       key.Binding
	Copy         key.Binding
	ToggleFormat key.Binding
	CycleStyle   key.Binding
	CycleTone    key.Binding
	Help         key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Generate: key.NewBinding(
			key.WithKeys("ctrl+g", "alt+enter"),
			key.WithHelp("C-g", "generate"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		APIKey: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("C-k", "api key"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Expand: key.NewBinding(
			key.WithKeys("e", " "),
			key.WithHelp("e", "expand"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c", "y"),
			key.WithHelp("c", "copy"),
		),
		ToggleFormat: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "formats"),
		),
		CycleStyle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "style"),
		),
		CycleTone: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tone"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.NextFocus, k.APIKey, k.Help, k.ForceQuit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Generate, k.Submit, k.NextFocus, k.Back, k.APIKey},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Pin, k.Delete, k.Expand, k.Copy},
		{k.ToggleFormat, k.CycleStyle, k.CycleTone},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
