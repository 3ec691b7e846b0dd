package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Help     key.Binding
	Back     key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	Today    key.Binding
	Tip      key.Binding
	Quick    key.Binding
	Budget   key.Binding
	Greeting key.Binding
	Refresh  key.Binding
	Language key.Binding
	Clear    key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Quit, k.Help},
		{k.PrevDay, k.NextDay, k.Today, k.Tip, k.Greeting},
		{k.Quick, k.Budget, k.Refresh, k.Language, k.Clear},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("left", "["),
			key.WithHelp("←/[", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "]"),
			key.WithHelp("→/]", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "today"),
		),
		Tip: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "planning tip"),
		),
		Quick: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "quick entry"),
		),
		Budget: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "set budget"),
		),
		Greeting: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "edit greeting"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh insight"),
		),
		Language: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "switch language"),
		),
		Clear: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear data"),
		),
	}
}
