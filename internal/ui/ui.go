package ui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/ui/dialog"
	"todo/internal/ui/element"
)

// Run starts the full-screen program and saves the tasks after it exits.
func Run(ctx Context) error {
	app, err := New(ctx)
	if err != nil {
		return err
	}
	program := tea.NewProgram(app, tea.WithAltScreen())
	_, runErr := program.Run()
	return errors.Join(runErr, app.Flush())
}

func (a *App) View() string {
	if !a.ready {
		return ""
	}
	if a.dialog.Modal().State() != dialog.StateClosed {
		return a.dialog.View(a.width, a.height)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Todo"))
	b.WriteString("\n\n")
	b.WriteString(element.Render(a.filterBar, a.sheet, nil))
	b.WriteString("\n\n")

	prompt := "  "
	if a.quickAdd {
		prompt = cursorStyle.Render("›") + " "
	}
	b.WriteString(prompt + a.fields.View(dialog.FieldNewTitle))
	b.WriteString("\n\n")

	b.WriteString(a.renderTaskList())

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(a.status))
	b.WriteString("\n")
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

func (a *App) renderTaskList() string {
	if len(a.rows) == 0 {
		return statusStyle.Render("No tasks here. Press 'n' to add one.") + "\n"
	}
	focused := a.focusedControl()
	var b strings.Builder
	for i, row := range a.rows {
		cursor := "  "
		var focus *element.Element
		if i == a.cursor && !a.quickAdd {
			cursor = cursorStyle.Render(">") + " "
			focus = focused
		}
		b.WriteString(cursor + element.Render(row, a.sheet, focus))
		b.WriteString("\n")
	}
	return b.String()
}
