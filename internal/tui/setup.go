package tui

import (
	"github.com/theirongolddev/billdue/internal/config"
	"github.com/theirongolddev/billdue/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the choices made in the setup wizard.
type SetupValues struct {
	Backend   string
	OnCorrupt string
	Theme     string
	DataFile  string
}

// SetupValuesFrom seeds the wizard with the current config.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		Backend:   cfg.General.Backend,
		OnCorrupt: cfg.General.OnCorrupt,
		Theme:     cfg.Appearance.Theme,
		DataFile:  cfg.General.DataFile,
	}
}

// Apply returns cfg updated with the wizard choices.
func (v SetupValues) Apply(cfg config.Config) config.Config {
	cfg.General.Backend = v.Backend
	cfg.General.OnCorrupt = v.OnCorrupt
	cfg.General.DataFile = v.DataFile
	cfg.Appearance.Theme = v.Theme
	return cfg
}

// NewSetupForm builds the first-run wizard bound to v.
func NewSetupForm(v *SetupValues) *huh.Form {
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themes = append(themes, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to billdue!").
				Description("Let's set up a few things."),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Storage").
				Description("Where bills are kept.").
				Options(
					huh.NewOption("JSON file (readable, easy to back up)", config.BackendJSON),
					huh.NewOption("SQLite database", config.BackendSQLite),
				).
				Value(&v.Backend),
			huh.NewInput().
				Title("Data file").
				Description("Leave blank for the default location.").
				Placeholder(config.DataDir()).
				Value(&v.DataFile),
			huh.NewSelect[string]().
				Title("If the bill data can't be read").
				Options(
					huh.NewOption("Stop with an error", config.OnCorruptFail),
					huh.NewOption("Move it aside and start empty", config.OnCorruptEmpty),
				).
				Value(&v.OnCorrupt),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.Theme),
		),
	)
}
