package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/billdue/internal/schedule"
	"github.com/theirongolddev/billdue/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Styles, rebuilt from the active theme by ApplyTheme.
var (
	titleStyle  lipgloss.Style
	headerStyle lipgloss.Style
	valueStyle  lipgloss.Style
	mutedStyle  lipgloss.Style
	dimStyle    lipgloss.Style
	warnStyle   lipgloss.Style
	active      theme.Theme
)

func init() {
	ApplyTheme(theme.Active)
}

// ApplyTheme switches CLI output to the colors of t.
func ApplyTheme(t theme.Theme) {
	active = t
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.TextPrimary).
		Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)
	valueStyle = lipgloss.NewStyle().
		Foreground(t.TextPrimary)
	mutedStyle = lipgloss.NewStyle().
		Foreground(t.TextMuted)
	dimStyle = lipgloss.NewStyle().
		Foreground(t.TextDim)
	warnStyle = lipgloss.NewStyle().
		Foreground(t.Orange)
}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// RowStyles optionally styles each row; nil entries use the default.
	RowStyles []*lipgloss.Style
	Widths    []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(active.Border).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderWarning renders an indented warning line.
func RenderWarning(msg string) string {
	return "  " + warnStyle.Render(msg)
}

// RenderMuted renders an indented secondary line.
func RenderMuted(msg string) string {
	return "  " + mutedStyle.Render(msg)
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + padRight(h, widths[i]) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for r, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}

		style := valueStyle
		if r < len(t.RowStyles) && t.RowStyles[r] != nil {
			style = *t.RowStyles[r]
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			// Text left, numbers right.
			var padded string
			if i == 0 || !looksNumeric(cell) {
				padded = " " + padRight(cell, widths[i]) + " "
			} else {
				padded = " " + padLeft(cell, widths[i]) + " "
			}
			b.WriteString(style.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")

	return b.String()
}

// RenderBills renders a display pass as a table colored by urgency.
func RenderBills(entries []schedule.Entry) string {
	rows := make([][]string, 0, len(entries))
	styles := make([]*lipgloss.Style, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			e.Bill.Name,
			FormatDue(e.Bill.DueMonth, e.Bill.DueDay),
			FormatDays(e.DaysUntil),
			FormatAmount(e.Bill.Amount),
			e.Bill.Cycle.String(),
			e.Urgency.String(),
			ShortID(e.Bill.ID),
		})
		style := active.UrgencyStyle(e.Urgency)
		styles = append(styles, &style)
	}

	return RenderTable(Table{
		Headers:   []string{"#", "Bill", "Due", "When", "Amount", "Cycle", "Status", "ID"},
		Rows:      rows,
		RowStyles: styles,
	})
}

// RenderSummary renders the one-line footer under the bill table.
func RenderSummary(s schedule.Summary) string {
	parts := []string{
		fmt.Sprintf("%d bills", s.Bills),
		fmt.Sprintf("%s unpaid", FormatAmount(s.UnpaidTotal)),
		fmt.Sprintf("%d due this week", s.DueThisWeek),
	}
	if s.Overdue > 0 {
		parts = append(parts, warnStyle.Render(fmt.Sprintf("%d overdue", s.Overdue)))
	}
	if s.Paid > 0 {
		parts = append(parts, fmt.Sprintf("%d paid", s.Paid))
	}
	return "  " + strings.Join(parts, mutedStyle.Render("  ·  "))
}

func padRight(s string, w int) string {
	if pad := w - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func padLeft(s string, w int) string {
	if pad := w - lipgloss.Width(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

func looksNumeric(s string) bool {
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != ',' && r != '.' {
			return false
		}
	}
	return true
}
