package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the screen's key bindings
type keyMap struct {
	Submit    key.Binding
	Focus     key.Binding
	Search    key.Binding
	Up        key.Binding
	Down      key.Binding
	Details   key.Binding
	Clear     key.Binding
	Help      key.Binding
	Back      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "edit search")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Details:   key.NewBinding(key.WithKeys("enter", "i"), key.WithHelp("enter/i", "details")),
		Clear:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// searchHelp is the footer shown while typing
type searchHelp struct{ keys keyMap }

func (h searchHelp) ShortHelp() []key.Binding {
	quit := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit"))
	return []key.Binding{h.keys.Submit, h.keys.Focus, h.keys.Clear, quit}
}

func (h searchHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// listHelp is the footer shown while browsing results
type listHelp struct{ keys keyMap }

func (h listHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.Up, h.keys.Down, h.keys.Details, h.keys.Search, h.keys.Help, h.keys.Quit}
}

func (h listHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.keys.Up, h.keys.Down, h.keys.Details},
		{h.keys.Search, h.keys.Focus, h.keys.Back, h.keys.Clear},
		{h.keys.Help, h.keys.Quit, h.keys.ForceQuit},
	}
}
