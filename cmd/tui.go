package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/billdue/internal/config"
	"github.com/theirongolddev/billdue/internal/logging"
	"github.com/theirongolddev/billdue/internal/schedule"
	"github.com/theirongolddev/billdue/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive bill board",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	fixed, err := today()
	if err != nil {
		return err
	}
	clock := func() time.Time { return schedule.Today(time.Now()) }
	if flagToday != "" {
		clock = func() time.Time { return fixed }
	}

	// The board owns the screen, so store logging is dropped.
	s, err := openStore(logging.Discard())
	if err != nil {
		return err
	}
	defer s.Close()

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(s, clock, !config.Exists())
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
