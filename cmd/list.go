package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/theirongolddev/billdue/internal/cli"
	"github.com/theirongolddev/billdue/internal/schedule"

	"github.com/spf13/cobra"
)

var flagJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show bills by due date, colored by urgency",
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagJSON, "json", false, "Print bills as JSON")
	rootCmd.AddCommand(listCmd)
}

type listEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	DueDay    int    `json:"due_day"`
	DueMonth  int    `json:"due_month"`
	CycleType string `json:"cycle_type"`
	Amount    string `json:"amount"`
	Paid      bool   `json:"paid"`
	DaysUntil int    `json:"days_until"`
	Urgency   string `json:"urgency"`
	Color     string `json:"color"`
	Label     string `json:"label"`
}

func runList(_ *cobra.Command, _ []string) error {
	now, err := today()
	if err != nil {
		return err
	}
	s, err := openStore(slog.Default())
	if err != nil {
		return err
	}
	defer s.Close()

	entries, saveErr := s.List(now)
	if saveErr != nil {
		slog.Warn("rollover not saved", "err", saveErr)
	}

	if flagJSON {
		return printJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Println()
		fmt.Println("  No bills yet.")
		fmt.Println("  Add one with `billdue add`, or run `billdue tui`.")
		fmt.Println()
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BILLS  |  %s", now.Format("Mon Jan 2, 2006"))))
	fmt.Println()
	fmt.Print(cli.RenderBills(entries))
	fmt.Println(cli.RenderSummary(schedule.Summarize(entries)))
	fmt.Println()
	return nil
}

func printJSON(entries []schedule.Entry) error {
	out := make([]listEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, listEntry{
			ID:        e.Bill.ID,
			Name:      e.Bill.Name,
			DueDay:    e.Bill.DueDay,
			DueMonth:  e.Bill.DueMonth,
			CycleType: e.Bill.Cycle.String(),
			Amount:    e.Bill.Amount.StringFixed(2),
			Paid:      e.Bill.Paid,
			DaysUntil: e.DaysUntil,
			Urgency:   e.Urgency.String(),
			Color:     e.Urgency.Color(),
			Label:     cli.Label(e.Bill),
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
