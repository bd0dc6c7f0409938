package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Home      key.Binding
	End       key.Binding
	Menu      key.Binding
	Select    key.Binding
	Close     key.Binding
	Wireframe key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("up", "k", "pgup", "left", "h"),
			key.WithHelp("↑/k", "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "j", "pgdown", "right", "l", " "),
			key.WithHelp("↓/j", "next"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m", "tab"),
			key.WithHelp("m", "menu"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Wireframe: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "wireframe"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Menu, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Home, k.End},
		{k.Menu, k.Select, k.Close},
		{k.Wireframe, k.Help, k.Quit},
	}
}
