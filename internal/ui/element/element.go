// Package element builds small trees of interactive terminal widgets: containers,
// text spans, buttons, icons and checkboxes with their event handlers attached.
package element

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type Kind int

const (
	KindDiv Kind = iota
	KindSpan
	KindButton
	KindIcon
	KindCheckbox
)

// Attrs are element attributes. "class" holds space separated style classes.
type Attrs map[string]string

// Handler runs when a button is activated.
type Handler func() tea.Cmd

// ChangeHandler runs after a checkbox flipped to checked.
type ChangeHandler func(checked bool) tea.Cmd

type Element struct {
	Kind     Kind
	Attrs    Attrs
	Text     string
	Children []*Element
	Checked  bool

	onClick  Handler
	onChange ChangeHandler
}

func newElement(kind Kind, attrs Attrs, children []*Element) *Element {
	e := &Element{Kind: kind, Attrs: Attrs{}}
	for k, v := range attrs {
		e.Attrs[k] = v
	}
	e.Children = append(e.Children, children...)
	return e
}

func Div(attrs Attrs, children ...*Element) *Element {
	return newElement(KindDiv, attrs, children)
}

func Span(attrs Attrs, text string, children ...*Element) *Element {
	s := newElement(KindSpan, attrs, children)
	s.Text = text
	return s
}

func Button(attrs Attrs, onClick Handler, children ...*Element) *Element {
	b := newElement(KindButton, attrs, children)
	b.onClick = onClick
	return b
}

// Icon renders the glyph registered for name; unknown names render as "?".
func Icon(attrs Attrs, name string, children ...*Element) *Element {
	i := newElement(KindIcon, attrs, children)
	i.Text = name
	i.AddClass("icon")
	return i
}

func Checkbox(attrs Attrs, onChange ChangeHandler, checked bool, children ...*Element) *Element {
	c := newElement(KindCheckbox, attrs, children)
	c.AddClass("checkbox")
	c.Checked = checked
	c.onChange = onChange
	return c
}

// Append adds children at the end.
func (e *Element) Append(children ...*Element) {
	e.Children = append(e.Children, children...)
}

// Prepend adds children at the front, keeping their order.
func (e *Element) Prepend(children ...*Element) {
	e.Children = append(slices.Clone(children), e.Children...)
}

func (e *Element) Interactive() bool {
	return e.Kind == KindButton || e.Kind == KindCheckbox
}

// Activate clicks a button or flips a checkbox and runs its handler.
func (e *Element) Activate() tea.Cmd {
	switch e.Kind {
	case KindButton:
		if e.onClick != nil {
			return e.onClick()
		}
	case KindCheckbox:
		e.Checked = !e.Checked
		if e.onChange != nil {
			return e.onChange(e.Checked)
		}
	}
	return nil
}

func (e *Element) Attr(name string) string { return e.Attrs[name] }

func (e *Element) Classes() []string {
	return strings.Fields(e.Attrs["class"])
}

func (e *Element) HasClass(c string) bool {
	return slices.Contains(e.Classes(), c)
}

func (e *Element) AddClass(c string) {
	if e.HasClass(c) {
		return
	}
	e.Attrs["class"] = strings.TrimSpace(e.Attrs["class"] + " " + c)
}

func (e *Element) RemoveClass(c string) {
	classes := slices.DeleteFunc(e.Classes(), func(x string) bool { return x == c })
	e.Attrs["class"] = strings.Join(classes, " ")
}

// ToggleClass flips c and reports whether it is now present.
func (e *Element) ToggleClass(c string) bool {
	if e.HasClass(c) {
		e.RemoveClass(c)
		return false
	}
	e.AddClass(c)
	return true
}

// Controls lists the interactive elements under root in document order.
func Controls(root *Element) []*Element {
	var out []*Element
	var walk func(*Element)
	walk = func(e *Element) {
		if e == nil {
			return
		}
		if e.Interactive() {
			out = append(out, e)
		}
		for _, c := range e.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}

// Find returns the first element under root whose attribute name equals value.
func Find(root *Element, name, value string) *Element {
	if root == nil {
		return nil
	}
	if root.Attrs[name] == value {
		return root
	}
	for _, c := range root.Children {
		if found := Find(c, name, value); found != nil {
			return found
		}
	}
	return nil
}
