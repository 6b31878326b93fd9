// Package cmd implements the billdue CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/billdue/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Backend:    %s\n", cfg.General.Backend)
	fmt.Printf("    Data file:  %s\n", dataPath(cfg))
	fmt.Printf("    On corrupt: %s\n", cfg.General.OnCorrupt)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `billdue setup` to reconfigure.")
	return nil
}
