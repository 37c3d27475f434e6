package dialog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"todo/internal/task"
)

// ViewMode decides how the task dialog is filled and whether it is editable.
type ViewMode int

const (
	ModeCreate ViewMode = iota
	ModeView
	ModeEdit
)

func (v ViewMode) String() string {
	switch v {
	case ModeView:
		return "view"
	case ModeEdit:
		return "edit"
	default:
		return "create"
	}
}

// Fields the task dialog works with. FieldNewTitle lives outside the card:
// it is the quick-add line whose text seeds a new task.
const (
	FieldTaskID      FieldID = "task-id"
	FieldTitle       FieldID = "task-title"
	FieldDate        FieldID = "task-date"
	FieldPriority    FieldID = "task-priority"
	FieldDescription FieldID = "task-description"
	FieldNewTitle    FieldID = "new-task-title"
)

var editable = []FieldID{FieldTitle, FieldDate, FieldPriority, FieldDescription}

// TaskFieldSpecs describes every field a TaskDialog requires.
func TaskFieldSpecs() []FieldSpec {
	priorities := make([]string, 0, 3)
	for _, p := range task.Priorities() {
		priorities = append(priorities, p.String())
	}
	return []FieldSpec{
		{ID: FieldTaskID, Kind: KindLabel, Label: "Task"},
		{ID: FieldTitle, Kind: KindInput, Label: "Title", Placeholder: "What needs doing?"},
		{ID: FieldDate, Kind: KindInput, Label: "Due", Placeholder: "YYYY-MM-DD", CharLimit: 32},
		{ID: FieldPriority, Kind: KindChoice, Label: "Priority", Options: priorities},
		{ID: FieldDescription, Kind: KindTextArea, Label: "Description", Placeholder: "Details (markdown)", Lines: 4},
		{ID: FieldNewTitle, Kind: KindInput, Label: "New task", Placeholder: "Add a task and press enter"},
	}
}

// TaskDialog drives a Modal with the task fields.
type TaskDialog struct {
	modal *Modal
	mode  ViewMode

	md     *glamour.TermRenderer
	mdWrap int
}

func NewTaskDialog(fields *Fields, duration time.Duration) (*TaskDialog, error) {
	if err := fields.Require(FieldTaskID, FieldTitle, FieldDate, FieldPriority, FieldDescription, FieldNewTitle); err != nil {
		return nil, fmt.Errorf("task dialog: %w", err)
	}
	m := NewModal(fields, duration)
	m.SetFocusOrder(editable...)
	return &TaskDialog{modal: m}, nil
}

func (d *TaskDialog) Modal() *Modal { return d.modal }
func (d *TaskDialog) Mode() ViewMode { return d.mode }
func (d *TaskDialog) IsOpen() bool { return d.modal.IsOpen() }

// Open shows the dialog for id. Create seeds the title from the quick-add
// field and empties it; View and Edit copy rec into the fields; View also
// makes them read-only.
func (d *TaskDialog) Open(mode ViewMode, rec *task.Task, id string) tea.Cmd {
	d.mode = mode
	d.modal.Open(func() {
		d.modal.SetFieldText(FieldTaskID, id)

		if mode == ModeCreate {
			d.modal.SetField(FieldTitle, d.modal.Field(FieldNewTitle))
			d.modal.SetField(FieldNewTitle, "")
		}
		if (mode == ModeEdit || mode == ModeView) && rec != nil {
			d.Set(*rec)
		}
		if mode == ModeView {
			d.setReadOnly(true)
		}
	})
	if mode == ModeView {
		return nil
	}
	return d.modal.FocusFirst()
}

// Close makes the fields editable again and blanks them once the card is gone.
func (d *TaskDialog) Close() tea.Cmd {
	d.setReadOnly(false)
	return d.modal.Close(d.clear)
}

func (d *TaskDialog) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok && d.modal.IsOpen() {
		multiline := false
		if id, ok := d.modal.FocusedField(); ok {
			multiline = d.modal.Fields().Multiline(id)
		}
		switch km.String() {
		case "tab":
			return d.modal.FocusNext()
		case "shift+tab":
			return d.modal.FocusPrev()
		case "down":
			if !multiline {
				return d.modal.FocusNext()
			}
		case "up":
			if !multiline {
				return d.modal.FocusPrev()
			}
		}
	}
	return d.modal.Update(msg)
}

// Get reads the record currently shown. Done is never part of the dialog.
func (d *TaskDialog) Get() task.Task {
	id, err := strconv.Atoi(strings.TrimSpace(d.modal.FieldText(FieldTaskID)))
	if err != nil {
		id = 0
	}
	return task.Task{
		ID:          id,
		Title:       d.modal.Field(FieldTitle),
		Date:        d.modal.Field(FieldDate),
		Priority:    task.ParsePriority(d.modal.Field(FieldPriority)),
		Description: d.modal.Field(FieldDescription),
	}
}

func (d *TaskDialog) Set(t task.Task) {
	d.modal.SetField(FieldTitle, t.Title)
	d.modal.SetField(FieldDate, t.Date)
	d.modal.SetField(FieldPriority, strconv.Itoa(int(t.Priority)))
	d.modal.SetField(FieldDescription, t.Description)
}

func (d *TaskDialog) setReadOnly(readOnly bool) {
	for _, id := range editable {
		d.modal.SetFieldDisabled(id, readOnly)
	}
}

func (d *TaskDialog) clear() {
	d.modal.SetField(FieldTitle, "")
	d.modal.SetField(FieldDate, "")
	d.modal.SetField(FieldPriority, "0")
	d.modal.SetField(FieldDescription, "")
}

var (
	labelStyle = lipgloss.NewStyle().Width(13).Foreground(lipgloss.Color("#636E72"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A29BFE"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#636E72"))
)

// View draws the card centred in width x height.
func (d *TaskDialog) View(width, height int) string {
	if d.modal.State() == StateClosed {
		return ""
	}
	fields := d.modal.Fields()
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s task #%s", headingFor(d.mode), fields.Text(FieldTaskID))))
	b.WriteString("\n\n")
	for _, id := range editable {
		if id == FieldDescription && d.mode == ModeView {
			continue
		}
		marker := "  "
		if focused, ok := d.modal.FocusedField(); ok && focused == id && d.mode != ModeView {
			marker = "› "
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, marker, labelStyle.Render(fields.Field(id).Spec().Label), fields.View(id)))
		b.WriteString("\n")
	}
	if d.mode == ModeView {
		b.WriteString("\n")
		b.WriteString(d.renderMarkdown(fields.Value(FieldDescription), width))
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("esc close"))
	} else {
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("tab next field • ←/→ priority • ctrl+s save • esc cancel"))
	}
	return d.modal.View(b.String(), width, height)
}

func headingFor(mode ViewMode) string {
	switch mode {
	case ModeView:
		return "View"
	case ModeEdit:
		return "Edit"
	default:
		return "New"
	}
}

// renderMarkdown renders the description, reusing the renderer while the
// wrap width stays the same.
func (d *TaskDialog) renderMarkdown(src string, width int) string {
	if strings.TrimSpace(src) == "" {
		return hintStyle.Render("(no description)")
	}
	wrap := 60
	if width > 0 && width-12 < wrap {
		wrap = max(width-12, 20)
	}
	if d.md == nil || d.mdWrap != wrap {
		r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(wrap))
		if err != nil {
			return src
		}
		d.md, d.mdWrap = r, wrap
	}
	out, err := d.md.Render(src)
	if err != nil {
		return src
	}
	return strings.Trim(out, "\n")
}
