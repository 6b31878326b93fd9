package cmd

import (
	"fmt"

	"github.com/theirongolddev/billdue/internal/config"
	"github.com/theirongolddev/billdue/internal/tui"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	vals := tui.SetupValuesFrom(cfg)
	if err := tui.NewSetupForm(&vals).Run(); err != nil {
		return err
	}

	cfg = vals.Apply(cfg)
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Printf("  Bills live in %s\n", config.DataPath(cfg))
	fmt.Println("  Run `billdue setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
