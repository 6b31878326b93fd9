package cmd

import (
	"fmt"
	"log/slog"

	"github.com/theirongolddev/billdue/internal/cli"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <bill>",
	Aliases: []string{"rm"},
	Short:   "Delete a bill by position, id prefix, or name",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(_ *cobra.Command, args []string) error {
	s, err := openStore(slog.Default())
	if err != nil {
		return err
	}
	defer s.Close()

	i, err := s.Resolve(args[0])
	if err != nil {
		return err
	}
	b, err := s.At(i)
	if err != nil {
		return err
	}

	if !flagYes {
		confirm := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %s?", cli.Label(b))).
			Affirmative("Delete").
			Negative("Keep").
			Value(&confirm).
			Run()
		if err != nil {
			return err
		}
		if !confirm {
			return nil
		}
	}

	removed, err := s.Delete(b.ID)
	if err != nil {
		return err
	}
	if removed && !flagQuiet {
		fmt.Printf("  Deleted %s\n", cli.Label(b))
	}
	return nil
}
