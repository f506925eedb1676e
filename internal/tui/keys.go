package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	Back     key.Binding
	Search   key.Binding
	Genres   key.Binding
	Left     key.Binding
	Right    key.Binding
	Toggle   key.Binding
	ClearAll key.Binding
	More     key.Binding
	Reload   key.Binding
	Suspend  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:     key.NewBinding(key.WithKeys("esc", "backspace", "b"), key.WithHelp("esc", "back")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Genres:   key.NewBinding(key.WithKeys("g", "tab"), key.WithHelp("g", "genres")),
		Left:     key.NewBinding(key.WithKeys("left", "h")),
		Right:    key.NewBinding(key.WithKeys("right", "l")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "toggle")),
		ClearAll: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filters")),
		More:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Suspend:  key.NewBinding(key.WithKeys("ctrl+z")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// listHelp is the help line of the list view.
type listHelp keyMap

func (k listHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Search, k.Genres, k.ClearAll, k.More, k.Quit}
}

func (k listHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// detailHelp is the help line of the detail view.
type detailHelp keyMap

func (k detailHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

func (k detailHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
