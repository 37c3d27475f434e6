package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todo/internal/config"
	"todo/internal/task"
	"todo/internal/ui/dialog"
	"todo/internal/ui/element"
)

var ErrNoStore = errors.New("no task store")

// Context carries what the app needs, built once at startup.
type Context struct {
	Store  *task.Store
	Config config.Config
	Logger *log.Logger
}

// App is the to-do list screen: filter bar, quick-add line, task rows and
// the task dialog on top.
type App struct {
	store  *task.Store
	cfg    config.Config
	logger *log.Logger

	fields *dialog.Fields
	dialog *dialog.TaskDialog
	keys   keyMap
	help   help.Model
	sheet  element.Stylesheet

	filter       task.Filter
	filterBar    *element.Element
	activeFilter *element.Element
	rows         []*element.Element

	cursor   int
	control  int
	quickAdd bool
	ready    bool
	width    int
	height   int
	status   string
}

// loadedMsg is the first message after start; nothing is drawn before it.
type loadedMsg struct{}

func New(ctx Context) (*App, error) {
	if ctx.Store == nil {
		return nil, ErrNoStore
	}
	logger := ctx.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fields, err := dialog.NewFields(dialog.TaskFieldSpecs()...)
	if err != nil {
		return nil, err
	}
	dlg, err := dialog.NewTaskDialog(fields, ctx.Config.DialogDuration())
	if err != nil {
		return nil, err
	}
	filter, err := task.ParseFilter(ctx.Config.DefaultFilter)
	if err != nil {
		logger.Warn("unknown default filter, showing all", "filter", ctx.Config.DefaultFilter)
	}
	if ctx.Config.Breakpoint <= 0 {
		ctx.Config.Breakpoint = config.DefaultBreakpoint
	}

	a := &App{
		store:  ctx.Store,
		cfg:    ctx.Config,
		logger: logger,
		fields: fields,
		dialog: dlg,
		keys:   newKeyMap(ctx.Config.Keys),
		help:   help.New(),
		sheet:  defaultStylesheet(),
		filter: filter,
		status: "n new • a quick add • space toggle • 1/2/3 filter",
	}
	a.buildFilterBar()
	return a, nil
}

func (a *App) buildFilterBar() {
	a.filterBar = element.Div(element.Attrs{"class": "row g-3"})
	for _, kind := range task.Filters() {
		name := kind.String()
		var btn *element.Element
		btn = element.Button(element.Attrs{"class": "filter btn", "filter": name}, func() tea.Cmd {
			a.SetFilter(kind, btn)
			return nil
		}, element.Span(nil, strings.ToUpper(name[:1])+name[1:]))
		if kind == a.filter {
			btn.AddClass("active")
			a.activeFilter = btn
		}
		a.filterBar.Append(btn)
	}
}

func (a *App) Filter() task.Filter { return a.filter }

// Rows are the rendered task rows, in display order.
func (a *App) Rows() []*element.Element { return a.rows }

func (a *App) Dialog() *dialog.TaskDialog { return a.dialog }

func (a *App) Fields() *dialog.Fields { return a.fields }

// OpenDialog opens the task dialog. Without an id the next free id is shown.
func (a *App) OpenDialog(mode dialog.ViewMode, rec *task.Task, id ...string) tea.Cmd {
	shown := a.store.PeekNextID()
	if len(id) > 0 && id[0] != "" {
		shown = id[0]
	}
	a.quickAdd = false
	a.fields.Blur(dialog.FieldNewTitle)
	a.logger.Debug("open dialog", "mode", mode, "id", shown)
	return a.dialog.Open(mode, rec, shown)
}

func (a *App) CloseDialog() tea.Cmd {
	return a.dialog.Close()
}

// SaveTask stores what the dialog shows. An existing id is replaced in
// place and the list redrawn; a new task is appended and only its row is
// added, when the active filter shows it.
func (a *App) SaveTask() tea.Cmd {
	rec := a.dialog.Get()
	if strings.TrimSpace(rec.Title) == "" {
		a.status = "Title cannot be empty"
		return nil
	}

	if existing, pos, ok := a.store.FindByID(rec.ID); ok {
		rec.Done = existing.Done
		if err := a.store.Replace(pos, rec); err != nil {
			a.fail("update failed", err)
			return nil
		}
		a.status = fmt.Sprintf("Updated #%d", rec.ID)
		a.logger.Debug("task updated", "id", rec.ID)
		a.renderList()
	} else {
		added, err := a.store.Insert(rec)
		if err != nil {
			a.fail("saving the id counter failed", err)
		} else {
			a.status = fmt.Sprintf("Added #%d", added.ID)
		}
		a.logger.Debug("task added", "id", added.ID)
		if a.filter.Predicate()(added) {
			a.rows = append(a.rows, a.renderRow(added))
		}
	}
	return a.dialog.Close()
}

// SetFilter switches the list filter and marks control as the active filter.
func (a *App) SetFilter(kind task.Filter, control *element.Element) {
	a.filter = kind
	if a.activeFilter != nil {
		a.activeFilter.ToggleClass("active")
	}
	if control != nil {
		control.ToggleClass("active")
	}
	a.activeFilter = control
	a.logger.Debug("filter changed", "filter", kind)
	a.renderList()
}

// renderList rebuilds every row from the store under the active filter.
func (a *App) renderList() {
	tasks := a.store.List(a.filter.Predicate())
	a.rows = make([]*element.Element, 0, len(tasks))
	for _, t := range tasks {
		a.rows = append(a.rows, a.renderRow(t))
	}
	a.cursor = clampCursor(a.cursor, len(a.rows))
	a.control = 0
}

func (a *App) wide() bool {
	return a.width > a.cfg.Breakpoint
}

func (a *App) renderRow(t task.Task) *element.Element {
	id := t.ID
	seq := a.store.Sequence()

	var row *element.Element
	actions := []*element.Element{
		element.Button(element.Attrs{"class": "btn icon", "action": "view"}, func() tea.Cmd {
			rec, _, ok := a.store.FindByID(id)
			if !ok {
				return nil
			}
			return a.OpenDialog(dialog.ModeView, &rec, seq.Format(id))
		}, element.Icon(element.Attrs{"class": "text-success"}, "eye")),
		element.Button(element.Attrs{"class": "btn icon", "action": "edit"}, func() tea.Cmd {
			rec, _, ok := a.store.FindByID(id)
			if !ok {
				return nil
			}
			return a.OpenDialog(dialog.ModeEdit, &rec, seq.Format(id))
		}, element.Icon(element.Attrs{"class": "text-info"}, "pencil")),
		element.Button(element.Attrs{"class": "btn icon", "action": "delete"}, func() tea.Cmd {
			if a.store.Remove(id) {
				a.status = fmt.Sprintf("Deleted #%d", id)
				a.logger.Debug("task deleted", "id", id)
			}
			a.renderList()
			return nil
		}, element.Icon(element.Attrs{"class": "text-alert"}, "trash")),
	}

	side := element.Div(element.Attrs{"class": "row g-3"}, actions...)
	if a.wide() {
		side.Prepend(
			element.Span(element.Attrs{"class": t.Priority.Class() + " bold"}, t.Priority.String()),
			element.Span(element.Attrs{"class": "op-50"}, "Due: "+t.Date),
		)
	}

	row = element.Div(element.Attrs{"class": "task-item row"},
		element.Checkbox(element.Attrs{"name": seq.Format(id), "action": "toggle"}, func(bool) tea.Cmd {
			row.ToggleClass("done")
			a.store.SetDone(id, row.HasClass("done"))
			a.renderList()
			return nil
		}, t.Done),
		element.Span(element.Attrs{"class": "title"}, fmt.Sprintf("#%d %s", id, t.Title)),
		side,
	)
	if t.Done {
		row.AddClass("done")
	}
	return row
}

// Flush persists the store. It is called once when the program ends.
func (a *App) Flush() error {
	if err := a.store.Flush(); err != nil {
		a.logger.Error("flush failed", "err", err)
		return err
	}
	a.logger.Info("tasks saved", "count", a.store.Len())
	return nil
}

func (a *App) fail(what string, err error) {
	a.status = fmt.Sprintf("%s: %v", what, err)
	a.logger.Error(what, "err", err)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
