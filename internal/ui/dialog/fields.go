package dialog

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	ErrUnknownField   = errors.New("unknown field")
	ErrDuplicateField = errors.New("duplicate field")
)

// FieldID names a field in a registry.
type FieldID string

type FieldKind int

const (
	// KindInput is an editable single line of text.
	KindInput FieldKind = iota
	// KindLabel only carries display text.
	KindLabel
	// KindChoice selects one of Options; its value is the option index.
	KindChoice
	// KindTextArea is editable multi-line text.
	KindTextArea
)

type FieldSpec struct {
	ID          FieldID
	Kind        FieldKind
	Label       string
	Placeholder string
	Options     []string
	// CharLimit caps typed input; 0 means no limit.
	CharLimit int
	// Lines is the visible height of a text area.
	Lines int
}

// Field is one registered field. Text fields keep the value they were
// given until the user edits them, so content the widgets cannot show
// exactly (tabs, newlines in a single line) survives a set and get.
type Field struct {
	spec     FieldSpec
	input    textinput.Model
	area     textarea.Model
	raw      string
	edited   bool
	text     string
	choice   int
	disabled bool
}

func (f *Field) Spec() FieldSpec { return f.spec }

// Fields is a registry of named fields, resolved once when it is built.
type Fields struct {
	order []FieldID
	byID  map[FieldID]*Field
}

func NewFields(specs ...FieldSpec) (*Fields, error) {
	fs := &Fields{byID: make(map[FieldID]*Field, len(specs))}
	for _, spec := range specs {
		if _, dup := fs.byID[spec.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, spec.ID)
		}
		f := &Field{spec: spec}
		switch spec.Kind {
		case KindInput:
			ti := textinput.New()
			ti.Placeholder = spec.Placeholder
			ti.CharLimit = spec.CharLimit
			ti.Width = 40
			f.input = ti
		case KindTextArea:
			ta := textarea.New()
			ta.Placeholder = spec.Placeholder
			ta.CharLimit = spec.CharLimit
			ta.MaxHeight = 0
			ta.ShowLineNumbers = false
			ta.SetWidth(40)
			ta.SetHeight(max(spec.Lines, 3))
			f.area = ta
		}
		fs.byID[spec.ID] = f
		fs.order = append(fs.order, spec.ID)
	}
	return fs, nil
}

// Require reports the first id that is not registered.
func (fs *Fields) Require(ids ...FieldID) error {
	for _, id := range ids {
		if _, ok := fs.byID[id]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, id)
		}
	}
	return nil
}

func (fs *Fields) IDs() []FieldID { return slices.Clone(fs.order) }

// field panics on ids that were never registered; callers check them with Require.
func (fs *Fields) field(id FieldID) *Field {
	f, ok := fs.byID[id]
	if !ok {
		panic(fmt.Sprintf("dialog: %v: %q", ErrUnknownField, id))
	}
	return f
}

func (fs *Fields) Field(id FieldID) *Field { return fs.field(id) }

// SetValue writes the value property. Choice fields take an index or an option label.
func (fs *Fields) SetValue(id FieldID, v string) {
	f := fs.field(id)
	switch f.spec.Kind {
	case KindInput, KindTextArea:
		f.setRaw(v)
	case KindLabel:
		f.text = v
	case KindChoice:
		f.choice = 0
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 && n < len(f.spec.Options) {
			f.choice = n
			return
		}
		for i, o := range f.spec.Options {
			if strings.EqualFold(o, v) {
				f.choice = i
			}
		}
	}
}

func (fs *Fields) Value(id FieldID) string {
	f := fs.field(id)
	switch f.spec.Kind {
	case KindInput, KindTextArea:
		return f.value()
	case KindChoice:
		return strconv.Itoa(f.choice)
	default:
		return f.text
	}
}

// SetText writes the display text property.
func (fs *Fields) SetText(id FieldID, v string) {
	f := fs.field(id)
	switch f.spec.Kind {
	case KindInput, KindTextArea, KindChoice:
		fs.SetValue(id, v)
	default:
		f.text = v
	}
}

func (fs *Fields) Text(id FieldID) string {
	f := fs.field(id)
	switch f.spec.Kind {
	case KindInput, KindTextArea:
		return f.value()
	case KindChoice:
		if f.choice < len(f.spec.Options) {
			return f.spec.Options[f.choice]
		}
		return ""
	default:
		return f.text
	}
}

func (fs *Fields) SetDisabled(id FieldID, disabled bool) {
	f := fs.field(id)
	f.disabled = disabled
	if disabled {
		f.blur()
	}
}

func (fs *Fields) Disabled(id FieldID) bool { return fs.field(id).disabled }

// Focusable reports whether keyboard focus may rest on the field.
func (fs *Fields) Focusable(id FieldID) bool {
	f := fs.field(id)
	return !f.disabled && f.spec.Kind != KindLabel
}

func (fs *Fields) Focus(id FieldID) tea.Cmd {
	f := fs.field(id)
	if f.disabled {
		return nil
	}
	switch f.spec.Kind {
	case KindInput:
		return f.input.Focus()
	case KindTextArea:
		return f.area.Focus()
	}
	return nil
}

func (fs *Fields) Blur(id FieldID) { fs.field(id).blur() }

func (fs *Fields) Focused(id FieldID) bool {
	f := fs.field(id)
	switch f.spec.Kind {
	case KindInput:
		return f.input.Focused()
	case KindTextArea:
		return f.area.Focused()
	}
	return false
}

// Multiline reports whether the field takes enter and the arrow keys itself.
func (fs *Fields) Multiline(id FieldID) bool { return fs.field(id).spec.Kind == KindTextArea }

// Update feeds msg to the field. Disabled fields ignore input; choice
// fields cycle with left/right.
func (fs *Fields) Update(id FieldID, msg tea.Msg) tea.Cmd {
	f := fs.field(id)
	if f.disabled {
		return nil
	}
	switch f.spec.Kind {
	case KindInput:
		before := f.input.Value()
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		f.touch(before, f.input.Value())
		return cmd
	case KindTextArea:
		before := f.area.Value()
		var cmd tea.Cmd
		f.area, cmd = f.area.Update(msg)
		f.touch(before, f.area.Value())
		return cmd
	case KindChoice:
		km, ok := msg.(tea.KeyMsg)
		if !ok || len(f.spec.Options) == 0 {
			return nil
		}
		switch km.String() {
		case "right", "l", "+", " ":
			f.choice = (f.choice + 1) % len(f.spec.Options)
		case "left", "h", "-":
			f.choice = (f.choice + len(f.spec.Options) - 1) % len(f.spec.Options)
		}
	}
	return nil
}

func (fs *Fields) SetWidth(width int) {
	if width <= 0 {
		return
	}
	for _, f := range fs.byID {
		switch f.spec.Kind {
		case KindInput:
			f.input.Width = width
		case KindTextArea:
			f.area.SetWidth(width)
		}
	}
}

// View renders the field's current content.
func (fs *Fields) View(id FieldID) string {
	f := fs.field(id)
	switch f.spec.Kind {
	case KindInput:
		if f.disabled {
			return f.value()
		}
		return f.input.View()
	case KindTextArea:
		if f.disabled {
			return f.value()
		}
		return f.area.View()
	case KindChoice:
		return "‹ " + fs.Text(id) + " ›"
	default:
		return f.text
	}
}

func (f *Field) setRaw(v string) {
	f.raw = v
	f.edited = false
	switch f.spec.Kind {
	case KindInput:
		f.input.SetValue(v)
	case KindTextArea:
		f.area.SetValue(v)
	}
}

func (f *Field) value() string {
	if !f.edited {
		return f.raw
	}
	if f.spec.Kind == KindTextArea {
		return f.area.Value()
	}
	return f.input.Value()
}

// touch marks the field edited once a keystroke changed the widget's text.
func (f *Field) touch(before, after string) {
	if before != after {
		f.edited = true
	}
}

func (f *Field) blur() {
	switch f.spec.Kind {
	case KindInput:
		f.input.Blur()
	case KindTextArea:
		f.area.Blur()
	}
}
