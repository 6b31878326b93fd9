package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/theirongolddev/billdue/internal/cli"
	"github.com/theirongolddev/billdue/internal/config"
	"github.com/theirongolddev/billdue/internal/logging"
	"github.com/theirongolddev/billdue/internal/schedule"
	"github.com/theirongolddev/billdue/internal/store"
	"github.com/theirongolddev/billdue/internal/tui/theme"

	"github.com/spf13/cobra"
)

var (
	flagFile    string
	flagBackend string
	flagToday   string
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "billdue",
	Short:         "Household bill tracker",
	Long:          "Track recurring bills, see what is due soon, and roll paid bills into the next month.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runList,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, store.ErrNoSelection) {
			fmt.Fprintf(os.Stderr, "  %v\n", err)
			return
		}
		fmt.Fprintf(os.Stderr, "  error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Bill data file (overrides config and BILLDUE_FILE)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Storage backend: json or sqlite")
	rootCmd.PersistentFlags().StringVar(&flagToday, "today", "", "Treat this date (YYYY-MM-DD) as today")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only print errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		switch {
		case flagVerbose:
			logging.Setup(true)
		case flagQuiet:
			logging.SetupWithWriter(os.Stderr, slog.LevelError)
		default:
			logging.Setup(false)
		}
		return nil
	}
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagBackend != "" {
		switch flagBackend {
		case config.BackendJSON, config.BackendSQLite:
			cfg.General.Backend = flagBackend
		default:
			return cfg, fmt.Errorf("unknown backend %q (want %s or %s)", flagBackend, config.BackendJSON, config.BackendSQLite)
		}
	}
	if flagFile != "" {
		cfg.General.DataFile = flagFile
	}
	theme.SetActive(cfg.Appearance.Theme)
	cli.ApplyTheme(theme.Active)
	return cfg, nil
}

// dataPath resolves the storage location; --file wins over BILLDUE_FILE.
func dataPath(cfg config.Config) string {
	if flagFile != "" {
		return flagFile
	}
	return config.DataPath(cfg)
}

// openStore opens and loads the configured bill store. The caller closes it.
func openStore(log *slog.Logger) (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	path := dataPath(cfg)

	var backend store.Backend
	if cfg.General.Backend == config.BackendSQLite {
		db, err := store.OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		backend = db
	} else {
		backend = store.NewJSONFile(path)
	}
	log.Debug("opening bill store", "backend", cfg.General.Backend, "path", path)

	s := store.New(backend,
		store.WithLogger(log),
		store.WithRecoverCorrupt(cfg.General.OnCorrupt == config.OnCorruptEmpty),
	)
	if err := s.Load(); err != nil {
		_ = s.Close()
		if errors.Is(err, store.ErrCorruptData) {
			return nil, fmt.Errorf("%w\n  set on_corrupt = %q in %s to start over", err, config.OnCorruptEmpty, config.ConfigPath())
		}
		return nil, err
	}
	return s, nil
}

// today returns the date decisions are made against for this run.
func today() (time.Time, error) {
	if flagToday == "" {
		return schedule.Today(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", flagToday)
	if err != nil {
		return time.Time{}, fmt.Errorf("--today: %w", err)
	}
	return schedule.Today(t), nil
}
