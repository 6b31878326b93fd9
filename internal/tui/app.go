// Package tui provides the interactive Bubble Tea bill board for billdue.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/billdue/internal/cli"
	"github.com/theirongolddev/billdue/internal/config"
	"github.com/theirongolddev/billdue/internal/model"
	"github.com/theirongolddev/billdue/internal/schedule"
	"github.com/theirongolddev/billdue/internal/store"
	"github.com/theirongolddev/billdue/internal/tui/components"
	"github.com/theirongolddev/billdue/internal/tui/theme"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirm
	modeSetup
)

// App is the root Bubble Tea model.
type App struct {
	store *store.Store
	clock func() time.Time

	// Latest display pass
	entries []schedule.Entry
	summary schedule.Summary
	cursor  int

	// UI state
	width    int
	height   int
	mode     mode
	showHelp bool
	keys     keyMap
	help     help.Model

	// Active form. Bound values live on the heap since App is copied on
	// every update.
	form      *huh.Form
	formVals  *FormValues
	editID    string // empty when adding
	confirm   *bool
	deleteID  string
	setupVals *SetupValues

	status    string
	statusErr bool
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 120
	minContentHeight = 3
)

// NewApp creates the board over s. clock supplies today's date; it is read
// once per display pass. With needSetup the first-run wizard opens first.
func NewApp(s *store.Store, clock func() time.Time, needSetup bool) App {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Background(theme.Active.Surface)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Active.TextDim).Background(theme.Active.Surface)

	a := App{
		store: s,
		clock: clock,
		keys:  newKeyMap(),
		help:  h,
	}
	a.refresh()

	if needSetup {
		cfg, _ := config.Load()
		vals := SetupValuesFrom(cfg)
		a.setupVals = &vals
		a.form = NewSetupForm(a.setupVals)
		a.mode = modeSetup
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.form != nil {
		return a.form.Init()
	}
	return nil
}

// refresh runs a display pass and keeps the cursor in range.
func (a *App) refresh() {
	entries, err := a.store.List(a.clock())
	a.entries = entries
	a.summary = schedule.Summarize(entries)
	if err != nil {
		a.setError(err)
	}
	a.clampCursor()
}

func (a *App) clampCursor() {
	if a.cursor >= len(a.entries) {
		a.cursor = len(a.entries) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// selectID moves the cursor to the bill with id, if present.
func (a *App) selectID(id string) {
	for i, e := range a.entries {
		if e.Bill.ID == id {
			a.cursor = i
			return
		}
	}
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusErr = false
}

func (a *App) setError(err error) {
	a.status = err.Error()
	a.statusErr = true
}

func (a App) selected() (model.Bill, bool) {
	if a.cursor < 0 || a.cursor >= len(a.entries) {
		return model.Bill{}, false
	}
	return a.entries[a.cursor].Bill, true
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.mode != modeList {
			if msg.String() == "esc" {
				return a.closeForm("cancelled")
			}
			return a.updateForm(msg)
		}
		return a.updateList(msg)
	}

	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.entries)-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Top):
		a.cursor = 0
	case key.Matches(msg, a.keys.Bottom):
		a.cursor = len(a.entries) - 1
		a.clampCursor()
	case key.Matches(msg, a.keys.Add):
		vals := NewFormValues(a.clock())
		return a.openForm(&vals, "")
	case key.Matches(msg, a.keys.Edit):
		b, ok := a.selected()
		if !ok {
			a.setError(store.ErrNoSelection)
			return a, nil
		}
		vals := FormValuesFrom(b)
		return a.openForm(&vals, b.ID)
	case key.Matches(msg, a.keys.Delete):
		b, ok := a.selected()
		if !ok {
			a.setError(store.ErrNoSelection)
			return a, nil
		}
		return a.openConfirm(b)
	case key.Matches(msg, a.keys.Paid):
		a.togglePaid()
	}
	return a, nil
}

func (a App) openForm(vals *FormValues, editID string) (tea.Model, tea.Cmd) {
	a.formVals = vals
	a.editID = editID
	a.form = NewBillForm(vals, editID != "").WithWidth(a.formWidth())
	a.mode = modeForm
	a.setStatus("")
	return a, a.form.Init()
}

func (a App) openConfirm(b model.Bill) (tea.Model, tea.Cmd) {
	confirm := false
	a.confirm = &confirm
	a.deleteID = b.ID
	a.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Delete bill?").
			Description(cli.Label(b)).
			Affirmative("Delete").
			Negative("Keep").
			Value(a.confirm),
	)).WithWidth(a.formWidth())
	a.mode = modeConfirm
	return a, a.form.Init()
}

func (a App) closeForm(status string) (tea.Model, tea.Cmd) {
	a.form = nil
	a.formVals = nil
	a.confirm = nil
	a.setupVals = nil
	a.editID = ""
	a.deleteID = ""
	a.mode = modeList
	if status != "" {
		a.setStatus(status)
	}
	return a, nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		switch a.mode {
		case modeForm:
			if err := a.submitForm(); err != nil {
				return a.reopenForm()
			}
		case modeConfirm:
			a.finishDelete()
		case modeSetup:
			a.finishSetup()
		}
		return a.closeForm("")
	case huh.StateAborted:
		return a.closeForm("cancelled")
	}
	return a, cmd
}

// reopenForm shows the editor again with the values already entered, after
// a submit the store rejected.
func (a App) reopenForm() (tea.Model, tea.Cmd) {
	a.form = NewBillForm(a.formVals, a.editID != "").WithWidth(a.formWidth())
	a.mode = modeForm
	return a, a.form.Init()
}

// submitForm stores the editor values as a new bill or an update. On error
// the status shows the reason and nothing is stored.
func (a *App) submitForm() error {
	f, err := a.formVals.Fields()
	if err != nil {
		a.setError(err)
		return err
	}

	today := a.clock()
	var b model.Bill
	if a.editID == "" {
		b, err = a.store.Add(f, today)
		if err == nil {
			a.setStatus("added " + b.Name)
		}
	} else {
		var ok bool
		b, ok, err = a.store.Update(a.editID, f, today)
		if err == nil && !ok {
			err = store.ErrNoSelection
		}
		if err == nil {
			a.setStatus("updated " + b.Name)
		}
	}
	if err != nil {
		a.setError(err)
		return err
	}

	a.refresh()
	a.selectID(b.ID)
	return nil
}

func (a *App) finishDelete() {
	if a.confirm == nil || !*a.confirm {
		a.setStatus("kept")
		return
	}
	removed, err := a.store.Delete(a.deleteID)
	if err != nil {
		a.setError(err)
		return
	}
	if removed {
		a.setStatus("deleted")
	}
	a.refresh()
}

func (a *App) finishSetup() {
	cfg, _ := config.Load()
	prev := cfg
	cfg = a.setupVals.Apply(cfg)
	theme.SetActive(cfg.Appearance.Theme)
	if err := config.Save(cfg); err != nil {
		a.setError(fmt.Errorf("saving config: %w", err))
		return
	}
	if cfg.General.Backend != prev.General.Backend || cfg.General.DataFile != prev.General.DataFile {
		a.setStatus("saved; storage changes apply next launch")
		return
	}
	a.setStatus("saved " + config.ConfigPath())
}

func (a *App) togglePaid() {
	b, rolled, err := a.store.TogglePaid(a.cursor, a.clock())
	if err != nil {
		a.setError(err)
		return
	}
	switch {
	case rolled:
		a.setStatus("paid " + b.Name + ", next due " + cli.FormatDue(b.DueMonth, b.DueDay))
	case b.Paid:
		a.setStatus("paid " + b.Name)
	default:
		a.setStatus("unpaid " + b.Name)
	}
	a.refresh()
	a.selectID(b.ID)
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) formWidth() int {
	return max(min(a.contentWidth()-8, 60), 30)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.mode != modeList && a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  billdue needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewForm() string {
	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	body := a.form.View()
	if a.mode == modeForm && a.statusErr {
		errStyle := lipgloss.NewStyle().Foreground(t.Red)
		body += "\n" + errStyle.Render(a.status)
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, group := range a.keys.FullHelp() {
		for _, k := range group {
			h := k.Help()
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", h.Key)),
				descStyle.Render(h.Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render("Colors: "))
	for _, u := range []model.Urgency{
		model.UrgencyNormal, model.UrgencySoon, model.UrgencyUrgent,
		model.UrgencyCritical, model.UrgencyOverdue, model.UrgencyPaid,
	} {
		b.WriteString(t.UrgencyStyle(u).Render(u.String()))
		b.WriteString(dimStyle.Render(" "))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)
	dateStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	headerRow := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)
	header := headerRow.Render(titleStyle.Render(" ◈ billdue") +
		dateStyle.Render("  ·  "+a.clock().Format("Monday, January 2")))

	hints := a.help.View(a.keys)
	statusBar := components.RenderStatusBar(w, hints, a.status, a.statusErr)

	cards := components.MetricCardRow(a.summaryMetrics(), cw)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar) - lipgloss.Height(cards)
	contentH = max(contentH, minContentHeight)

	body := a.renderBills(cw, contentH)
	body = padHeight(truncateHeight(body, contentH), contentH)
	body = fillLinesWithBackground(body, cw, t.Background)

	content := lipgloss.JoinVertical(lipgloss.Left, cards, body)
	content = lipgloss.Place(w, lipgloss.Height(content), lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) summaryMetrics() []components.Metric {
	t := theme.Active
	s := a.summary

	overdue := components.Metric{Label: "Overdue", Value: fmt.Sprintf("%d", s.Overdue)}
	if s.Overdue > 0 {
		overdue.Color = t.Red
	}
	return []components.Metric{
		{Label: "Bills", Value: fmt.Sprintf("%d", s.Bills), Delta: fmt.Sprintf("%d paid", s.Paid)},
		{Label: "Unpaid", Value: cli.FormatAmount(s.UnpaidTotal), Color: t.Orange},
		{Label: "Due this week", Value: fmt.Sprintf("%d", s.DueThisWeek), Color: t.Yellow},
		overdue,
	}
}

// renderBills draws the bill rows that fit in height lines, scrolled so the
// cursor stays visible.
func (a App) renderBills(width, height int) string {
	t := theme.Active
	if len(a.entries) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted)
		return "\n" + muted.Render("  No bills yet. Press a to add one.")
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	nameW := max(width-62, 12)
	var b strings.Builder
	b.WriteString(headerStyle.Render(formatRow("", "Bill", "Due", "When", "Amount", "Cycle", "Status", nameW)))
	b.WriteString("\n")

	rows := max(height-1, 1)
	start := scrollOffset(a.cursor, rows, len(a.entries))
	end := min(start+rows, len(a.entries))

	for i := start; i < end; i++ {
		e := a.entries[i]
		marker := " "
		style := t.UrgencyStyle(e.Urgency)
		if i == a.cursor {
			marker = "›"
			if e.Urgency != model.UrgencyOverdue {
				style = style.Background(t.SurfaceHover)
			}
			style = style.Bold(true)
		}
		line := formatRow(marker,
			truncStr(e.Bill.Name, nameW),
			cli.FormatDue(e.Bill.DueMonth, e.Bill.DueDay),
			cli.FormatDays(e.DaysUntil),
			cli.FormatAmount(e.Bill.Amount),
			e.Bill.Cycle.String(),
			e.Urgency.String(),
			nameW)
		b.WriteString(style.Render(line))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func formatRow(marker, name, due, when, amount, cycle, status string, nameW int) string {
	return fmt.Sprintf(" %s %-*s  %-5s  %-9s  %12s  %-16s  %-8s",
		marker, nameW, name, due, when, amount, cycle, status)
}

// scrollOffset returns the first visible row so that cursor lies within a
// window of rows lines.
func scrollOffset(cursor, rows, total int) int {
	offset := 0
	if cursor >= rows {
		offset = cursor - rows + 1
	}
	if maxOff := total - rows; offset > maxOff {
		offset = maxOff
	}
	return max(offset, 0)
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
