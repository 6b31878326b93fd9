package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/theirongolddev/billdue/internal/cli"
	"github.com/theirongolddev/billdue/internal/model"
	"github.com/theirongolddev/billdue/internal/tui"

	"github.com/spf13/cobra"
)

var (
	flagName   string
	flagDay    int
	flagMonth  int
	flagCycle  string
	flagAmount string
	flagPaid   bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a bill (opens a form when no flags are given)",
	Example: `  billdue add --name Rent --day 1 --month 3 --amount 1200
  billdue add --name Phone --day 15 --cycle "Every 30 Days" --amount 55.25 --paid`,
	RunE: runAdd,
}

func init() {
	addBillFlags(addCmd)
	addCmd.Flags().BoolVar(&flagPaid, "paid", false, "Bill is already paid")
	rootCmd.AddCommand(addCmd)
}

// addBillFlags registers the field flags shared by add and edit.
func addBillFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagName, "name", "", "Bill name")
	c.Flags().IntVar(&flagDay, "day", 0, "Due day of month (default today)")
	c.Flags().IntVar(&flagMonth, "month", 0, "Due month 1-12 (default this month)")
	c.Flags().StringVar(&flagCycle, "cycle", model.MonthlyOnFixedDay.String(), "Cycle type")
	c.Flags().StringVar(&flagAmount, "amount", "", "Amount in dollars")
}

func runAdd(c *cobra.Command, _ []string) error {
	now, err := today()
	if err != nil {
		return err
	}
	s, err := openStore(slog.Default())
	if err != nil {
		return err
	}
	defer s.Close()

	vals := tui.NewFormValues(now)
	if !fieldFlagsChanged(c) {
		if err := tui.NewBillForm(&vals, false).Run(); err != nil {
			return err
		}
	} else if err := applyFieldFlags(c, &vals); err != nil {
		return err
	}
	if c.Flags().Changed("paid") {
		vals.Paid = flagPaid
	}

	f, err := vals.Fields()
	if err != nil {
		return err
	}
	b, err := s.Add(f, now)
	if err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Printf("  Added %s\n", cli.Label(b))
	}
	return nil
}

func fieldFlagsChanged(c *cobra.Command) bool {
	for _, name := range []string{"name", "day", "month", "cycle", "amount", "paid"} {
		if c.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// applyFieldFlags copies the field flags that were set onto vals.
func applyFieldFlags(c *cobra.Command, vals *tui.FormValues) error {
	if c.Flags().Changed("name") {
		vals.Name = flagName
	}
	if c.Flags().Changed("day") {
		vals.Day = strconv.Itoa(flagDay)
	}
	if c.Flags().Changed("month") {
		vals.Month = strconv.Itoa(flagMonth)
	}
	if c.Flags().Changed("amount") {
		vals.Amount = flagAmount
	}
	if c.Flags().Changed("cycle") {
		cycle, err := model.ParseCycleType(flagCycle)
		if err != nil {
			return err
		}
		vals.Cycle = cycle
	}
	return nil
}
