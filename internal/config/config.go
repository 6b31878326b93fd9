// Package config loads and saves billdue settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Corrupt-data policies.
const (
	OnCorruptFail  = "fail"
	OnCorruptEmpty = "empty"
)

// Config holds all billdue configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds storage preferences.
type GeneralConfig struct {
	DataFile  string `toml:"data_file,omitempty"`
	Backend   string `toml:"backend"`
	OnCorrupt string `toml:"on_corrupt"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Backend:   BackendJSON,
			OnCorrupt: OnCorruptFail,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "billdue")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "billdue")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the bill file.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "billdue")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "billdue")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config at path, returning defaults if it doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config location
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.General.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.General.Backend, BackendJSON, BackendSQLite)
	}
	switch c.General.OnCorrupt {
	case OnCorruptFail, OnCorruptEmpty:
	default:
		return fmt.Errorf("unknown on_corrupt %q (want %s or %s)", c.General.OnCorrupt, OnCorruptFail, OnCorruptEmpty)
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// DataPath returns the bill storage location: BILLDUE_FILE, then the config
// value, then a default under DataDir named for the backend.
func DataPath(cfg Config) string {
	if p := os.Getenv("BILLDUE_FILE"); p != "" {
		return p
	}
	if cfg.General.DataFile != "" {
		return expandHome(cfg.General.DataFile)
	}
	if cfg.General.Backend == BackendSQLite {
		return filepath.Join(DataDir(), "bills.db")
	}
	return filepath.Join(DataDir(), "bills.json")
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

func expandHome(p string) string {
	if len(p) < 2 || p[:2] != "~/" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
