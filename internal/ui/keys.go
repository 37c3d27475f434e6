package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"todo/internal/config"
)

type keyMap struct {
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	Activate      key.Binding
	Toggle        key.Binding
	New           key.Binding
	QuickAdd      key.Binding
	View          key.Binding
	Edit          key.Binding
	Delete        key.Binding
	FilterAll     key.Binding
	FilterPending key.Binding
	FilterDone    key.Binding
	Save          key.Binding
	Cancel        key.Binding
	Quit          key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Up:            bind("move up", k.Up, "up"),
		Down:          bind("move down", k.Down, "down"),
		Left:          bind("prev control", k.Left, "left", "shift+tab"),
		Right:         bind("next control", k.Right, "right", "tab"),
		Activate:      bind("press", k.Activate),
		Toggle:        bind("toggle done", k.Toggle),
		New:           bind("new task", k.New),
		QuickAdd:      bind("quick add", k.QuickAdd),
		View:          bind("view", k.View),
		Edit:          bind("edit", k.Edit),
		Delete:        bind("delete", k.Delete),
		FilterAll:     bind("all", k.FilterAll),
		FilterPending: bind("pending", k.FilterPending),
		FilterDone:    bind("done", k.FilterDone),
		Save:          bind("save", k.Save),
		Cancel:        bind("cancel", k.Cancel),
		Quit:          bind("quit", k.Quit, "ctrl+c"),
	}
}

// bind makes a binding whose help shows the configured key first.
func bind(desc, primary string, extra ...string) key.Binding {
	keys := append([]string{primary}, extra...)
	label := primary
	if label == " " {
		label = "space"
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.QuickAdd, k.Toggle, k.View, k.Edit, k.Delete, k.FilterAll, k.FilterPending, k.FilterDone, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Activate},
		{k.New, k.QuickAdd, k.Toggle, k.View, k.Edit, k.Delete},
		{k.FilterAll, k.FilterPending, k.FilterDone},
		{k.Save, k.Cancel, k.Quit},
	}
}
