package cmd

import (
	"fmt"
	"log/slog"

	"github.com/theirongolddev/billdue/internal/store"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <bills.json>",
	Short: "Append bills from a JSON bill file",
	Long: "Append bills from a JSON bill file, such as one written by the json backend.\n" +
		"Useful for moving bills into the sqlite backend.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	src := store.NewJSONFile(args[0])
	bills, err := src.Read()
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	if len(bills) == 0 {
		return fmt.Errorf("no bills in %s", args[0])
	}

	s, err := openStore(slog.Default())
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.Import(bills)
	if err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Printf("  Imported %d bills from %s\n", n, args[0])
	}
	return nil
}
