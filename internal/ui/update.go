package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/task"
	"todo/internal/ui/dialog"
	"todo/internal/ui/element"
)

func (a *App) Init() tea.Cmd {
	return func() tea.Msg { return loadedMsg{} }
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		a.ready = true
		a.renderList()
		return a, nil
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		a.fields.SetWidth(min(msg.Width-24, 60))
		if a.ready {
			a.renderList()
		}
		return a, nil
	case dialog.ClosedMsg:
		return a, a.dialog.Update(msg)
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	switch a.dialog.Modal().State() {
	case dialog.StateOpen:
		return a.updateDialog(msg)
	case dialog.StateClosing:
		return nil
	}
	if a.quickAdd {
		return a.updateQuickAdd(msg)
	}
	return a.updateList(msg)
}

func (a *App) updateDialog(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		return a.CloseDialog()
	case key.Matches(msg, a.keys.Save):
		if a.dialog.Mode() == dialog.ModeView {
			return a.CloseDialog()
		}
		return a.SaveTask()
	case msg.String() == "enter" && a.dialog.Mode() == dialog.ModeView:
		return a.CloseDialog()
	}
	return a.dialog.Update(msg)
}

func (a *App) updateQuickAdd(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.quickAdd = false
		a.fields.Blur(dialog.FieldNewTitle)
		return nil
	case "enter":
		return a.OpenDialog(dialog.ModeCreate, nil)
	}
	return a.fields.Update(dialog.FieldNewTitle, msg)
}

func (a *App) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit
	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)
	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)
	case key.Matches(msg, a.keys.Left):
		a.moveControl(-1)
	case key.Matches(msg, a.keys.Right):
		a.moveControl(1)
	case key.Matches(msg, a.keys.Activate):
		if c := a.focusedControl(); c != nil {
			return c.Activate()
		}
	case key.Matches(msg, a.keys.Toggle):
		return a.rowAction("toggle")
	case key.Matches(msg, a.keys.View):
		return a.rowAction("view")
	case key.Matches(msg, a.keys.Edit):
		return a.rowAction("edit")
	case key.Matches(msg, a.keys.Delete):
		return a.rowAction("delete")
	case key.Matches(msg, a.keys.New):
		return a.OpenDialog(dialog.ModeCreate, nil)
	case key.Matches(msg, a.keys.QuickAdd):
		a.quickAdd = true
		return a.fields.Focus(dialog.FieldNewTitle)
	case key.Matches(msg, a.keys.FilterAll):
		return a.clickFilter(task.FilterAll)
	case key.Matches(msg, a.keys.FilterPending):
		return a.clickFilter(task.FilterPending)
	case key.Matches(msg, a.keys.FilterDone):
		return a.clickFilter(task.FilterDone)
	}
	return nil
}

func (a *App) moveCursor(step int) {
	if len(a.rows) == 0 {
		return
	}
	a.cursor = clampCursor(a.cursor+step, len(a.rows))
	a.control = 0
}

func (a *App) moveControl(step int) {
	n := len(a.rowControls())
	if n == 0 {
		return
	}
	a.control = ((a.control+step)%n + n) % n
}

func (a *App) rowControls() []*element.Element {
	if len(a.rows) == 0 {
		return nil
	}
	return element.Controls(a.rows[clampCursor(a.cursor, len(a.rows))])
}

func (a *App) focusedControl() *element.Element {
	controls := a.rowControls()
	if len(controls) == 0 {
		return nil
	}
	return controls[a.control%len(controls)]
}

// rowAction presses the control tagged action on the row under the cursor.
func (a *App) rowAction(action string) tea.Cmd {
	if len(a.rows) == 0 {
		a.status = "No tasks"
		return nil
	}
	c := element.Find(a.rows[clampCursor(a.cursor, len(a.rows))], "action", action)
	if c == nil {
		return nil
	}
	return c.Activate()
}

func (a *App) clickFilter(kind task.Filter) tea.Cmd {
	btn := element.Find(a.filterBar, "filter", kind.String())
	if btn == nil {
		return nil
	}
	return btn.Activate()
}
