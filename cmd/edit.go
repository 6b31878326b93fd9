package cmd

import (
	"fmt"
	"log/slog"

	"github.com/theirongolddev/billdue/internal/cli"
	"github.com/theirongolddev/billdue/internal/store"
	"github.com/theirongolddev/billdue/internal/tui"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <bill>",
	Short: "Edit a bill by position, id prefix, or name",
	Long: "Edit a bill by position, id prefix, or name. Flags change only the fields given;\n" +
		"with no flags a form opens prefilled with the bill. Editing clears the paid flag.",
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	addBillFlags(editCmd)
	rootCmd.AddCommand(editCmd)
}

func runEdit(c *cobra.Command, args []string) error {
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
	current, err := s.At(i)
	if err != nil {
		return err
	}

	vals := tui.FormValuesFrom(current)
	if !fieldFlagsChanged(c) {
		if err := tui.NewBillForm(&vals, true).Run(); err != nil {
			return err
		}
	} else if err := applyFieldFlags(c, &vals); err != nil {
		return err
	}

	f, err := vals.Fields()
	if err != nil {
		return err
	}
	b, ok, err := s.Update(current.ID, f, now)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", store.ErrNoSelection, args[0])
	}

	if !flagQuiet {
		fmt.Printf("  Updated %s\n", cli.Label(b))
	}
	return nil
}
