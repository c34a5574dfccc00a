package shared

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	CreateDemo   key.Binding
	Start        key.Binding
	Load         key.Binding
	Advance      key.Binding
	Resolve      key.Binding
	AddFiller    key.Binding
	MoreFillers  key.Binding
	FewerFillers key.Binding
	Tick         key.Binding
	AutoTick     key.Binding
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Copy         key.Binding
	Help         key.Binding
	Quit         key.Binding
	Escape       key.Binding
}

var Keys = KeyMap{
	CreateDemo: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "create demo game"),
	),
	Start: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start game"),
	),
	Load: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "load game id"),
	),
	Advance: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "advance phase"),
	),
	Resolve: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "resolve round"),
	),
	AddFiller: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "add fillers"),
	),
	MoreFillers: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "more fillers"),
	),
	FewerFillers: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "fewer fillers"),
	),
	Tick: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "tick fillers"),
	),
	AutoTick: key.NewBinding(
		key.WithKeys("T"),
		key.WithHelp("T", "toggle auto-tick"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "scroll feed up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "scroll feed down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy game summary"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CreateDemo, k.Start, k.Advance, k.Resolve, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.CreateDemo, k.Load, k.Start},
		{k.Advance, k.Resolve},
		{k.AddFiller, k.MoreFillers, k.FewerFillers, k.Tick, k.AutoTick},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Copy, k.Help, k.Quit, k.Escape},
	}
}
