package element

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var glyphs = map[string]string{
	"eye":    "◎",
	"pencil": "✎",
	"trash":  "✗",
	"check":  "✓",
	"plus":   "+",
}

// Stylesheet maps class names to styles. Earlier classes on an element win.
type Stylesheet map[string]lipgloss.Style

func (s Stylesheet) style(e *Element) lipgloss.Style {
	st := lipgloss.NewStyle()
	for _, c := range e.Classes() {
		if cs, ok := s[c]; ok {
			st = st.Inherit(cs)
		}
	}
	return st
}

// Render draws the tree. The focused control is wrapped in angle brackets
// and gets the "focus" class style.
func Render(e *Element, sheet Stylesheet, focused *Element) string {
	if e == nil {
		return ""
	}
	st := sheet.style(e)
	if e == focused {
		if fs, ok := sheet["focus"]; ok {
			st = fs.Inherit(st)
		}
	}

	children := make([]string, 0, len(e.Children))
	for _, c := range e.Children {
		children = append(children, Render(c, sheet, focused))
	}

	var out string
	switch e.Kind {
	case KindDiv:
		if e.HasClass("row") {
			out = strings.Join(children, gap(e))
		} else {
			out = strings.Join(children, "\n")
		}
	case KindSpan:
		out = e.Text + strings.Join(children, "")
	case KindIcon:
		g, ok := glyphs[e.Text]
		if !ok {
			g = "?"
		}
		out = g + strings.Join(children, "")
	case KindButton:
		open, closing := "[", "]"
		if e == focused {
			open, closing = "<", ">"
		}
		label := strings.Join(children, "")
		if label == "" {
			label = e.Text
		}
		out = open + label + closing
	case KindCheckbox:
		mark := " "
		if e.Checked {
			mark = "x"
		}
		open, closing := "[", "]"
		if e == focused {
			open, closing = "<", ">"
		}
		out = open + mark + closing + strings.Join(children, "")
	}
	return st.Render(out)
}

func gap(e *Element) string {
	switch {
	case e.HasClass("g-3"):
		return "   "
	case e.HasClass("g-0"):
		return ""
	default:
		return " "
	}
}
