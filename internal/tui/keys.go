package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add, Edit, Toggle, Delete, Move, Drop, Cancel key.Binding
	NextFilter, PrevFilter, Theme, Copy, Quit     key.Binding
	NextCategory, PrevCategory, Submit            key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "done")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Move:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Drop:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextFilter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f/F", "filter")),
		PrevFilter: key.NewBinding(key.WithKeys("F")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		NextCategory: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "category")),
		PrevCategory: key.NewBinding(key.WithKeys("shift+tab")),
		Submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	}
}

func (k keyMap) browseHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Toggle, k.Delete, k.Move, k.NextFilter, k.Theme, k.Copy}
}

func (k keyMap) moveHelp() []key.Binding {
	return []key.Binding{k.Drop, k.Cancel}
}
