package components

import (
	"strings"

	"github.com/theirongolddev/billdue/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// the latest message on the right. Errors are drawn in red.
func RenderStatusBar(width int, hints, msg string, isErr bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	msgStyle := style
	if isErr {
		msgStyle = msgStyle.Foreground(t.Red).Bold(true)
	} else if msg != "" {
		msgStyle = msgStyle.Foreground(t.Green)
	}

	left := style.Render(" " + hints)
	right := ""
	if msg != "" {
		right = msgStyle.Render(msg + " ")
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return left + style.Render(strings.Repeat(" ", padding)) + right
}
