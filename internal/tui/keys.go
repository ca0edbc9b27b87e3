package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	ToggleAll   key.Binding
	First       key.Binding
	Prev        key.Binding
	Next        key.Binding
	Last        key.Binding
	NextColumn  key.Binding
	PrevColumn  key.Binding
	Sort        key.Binding
	Filter      key.Binding
	Reset       key.Binding
	Refresh     key.Binding
	Bigger      key.Binding
	Smaller     key.Binding
	Add         key.Binding
	Edit        key.Binding
	Delete      key.Binding
	DeleteBatch key.Binding
	Quit        key.Binding

	Submit  key.Binding
	Save    key.Binding
	Close   key.Binding
	Confirm key.Binding
	Decline key.Binding
	Field   key.Binding
	Back    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:      key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("x", "select")),
		ToggleAll:   key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "select all")),
		First:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		Prev:        key.NewBinding(key.WithKeys("left", "p"), key.WithHelp("←/p", "prev")),
		Next:        key.NewBinding(key.WithKeys("right", "n"), key.WithHelp("→/n", "next")),
		Last:        key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		NextColumn:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "column")),
		PrevColumn:  key.NewBinding(key.WithKeys("shift+tab")),
		Sort:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort")),
		Filter:      key.NewBinding(key.WithKeys("/", "f"), key.WithHelp("/", "filter")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Refresh:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
		Bigger:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "page size")),
		Smaller:     key.NewBinding(key.WithKeys("-")),
		Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:        key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		DeleteBatch: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete selected")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "yes")),
		Decline: key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		Field:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Back:    key.NewBinding(key.WithKeys("shift+tab", "up")),
	}
}

func (k keyMap) tableHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.ToggleAll, k.Prev, k.Next, k.NextColumn, k.Sort,
		k.Filter, k.Reset, k.Bigger, k.Add, k.Edit, k.Delete, k.DeleteBatch, k.Quit}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.Field, k.Submit, k.Close}
}

func (k keyMap) confirmHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Decline}
}
