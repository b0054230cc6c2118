package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Grab      key.Binding
	Drop      key.Binding
	Cancel    key.Binding
	Rename    key.Binding
	EditID    key.Binding
	Duplicate key.Binding
	Add       key.Binding
	Delete    key.Binding
	Reload    key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "collapse")),
		Grab:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "drag")),
		Drop:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "drop after")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Rename:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		EditID:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "edit id")),
		Duplicate: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "duplicate")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Reload:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) normalHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Grab, k.Rename, k.EditID, k.Duplicate, k.Add, k.Delete, k.Toggle, k.Quit}
}

func (k keyMap) dragHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Drop, k.Cancel}
}
