package cmd

import (
	"fmt"
	"log/slog"

	"github.com/theirongolddev/billdue/internal/cli"

	"github.com/spf13/cobra"
)

var paidCmd = &cobra.Command{
	Use:   "paid <bill>",
	Short: "Toggle a bill's paid flag",
	Long: "Toggle a bill's paid flag. A bill marked paid after its due date has passed\n" +
		"moves straight to next month.",
	Args: cobra.ExactArgs(1),
	RunE: runPaid,
}

func init() {
	rootCmd.AddCommand(paidCmd)
}

func runPaid(_ *cobra.Command, args []string) error {
	now, err := today()
	if err != nil {
		return err
	}
	s, err := openStore(slog.Default())
	if err != nil {
		return err
	}
	defer s.Close()

	i, err := s.Resolve(args[0])
	if err != nil {
		return err
	}
	b, rolled, err := s.TogglePaid(i, now)
	if err != nil {
		return err
	}

	if flagQuiet {
		return nil
	}
	switch {
	case rolled:
		fmt.Printf("  Marked paid, rolled to next due date: %s\n", cli.Label(b))
	case b.Paid:
		fmt.Printf("  Marked paid: %s\n", cli.Label(b))
	default:
		fmt.Printf("  Marked unpaid: %s\n", cli.Label(b))
	}
	return nil
}
