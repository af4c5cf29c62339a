package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Submit    key.Binding
	Focus     key.Binding
	Back      key.Binding
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	ClearAll  key.Binding
	Refresh   key.Binding
	Logout    key.Binding
	Edit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Focus:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch focus")),
		Back:      key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("esc", "back")),
		Up:        key.NewBinding(key.WithKeys("up", "k", "ctrl+p"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j", "ctrl+n"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "done/undo")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		ClearAll:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Logout:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
		Edit:      key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add task")),
	}
}
