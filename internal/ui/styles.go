package ui

import (
	"github.com/charmbracelet/lipgloss"

	"todo/internal/ui/element"
)

var (
	colorPrimary = lipgloss.Color("#6C5CE7")
	colorMuted   = lipgloss.Color("#636E72")
	colorSuccess = lipgloss.Color("#00B894")
	colorWarning = lipgloss.Color("#FDCB6E")
	colorAlert   = lipgloss.Color("#D63031")
	colorInfo    = lipgloss.Color("#74B9FF")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	statusStyle = lipgloss.NewStyle().Foreground(colorMuted)
	cursorStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
)

// defaultStylesheet holds the classes the task rows and filter bar use.
func defaultStylesheet() element.Stylesheet {
	return element.Stylesheet{
		"text-success": lipgloss.NewStyle().Foreground(colorSuccess),
		"text-warning": lipgloss.NewStyle().Foreground(colorWarning),
		"text-alert":   lipgloss.NewStyle().Foreground(colorAlert),
		"text-info":    lipgloss.NewStyle().Foreground(colorInfo),
		"bold":         lipgloss.NewStyle().Bold(true),
		"op-50":        lipgloss.NewStyle().Faint(true),
		"done":         lipgloss.NewStyle().Strikethrough(true).Faint(true),
		"active":       lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorPrimary),
		"focus":        lipgloss.NewStyle().Reverse(true),
	}
}
