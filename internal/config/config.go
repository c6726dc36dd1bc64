package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config holds all costbook configuration. Values come from the TOML config
// file, overridden by COSTBOOK_* environment variables, overridden by flags.
type Config struct {
	General GeneralConfig `toml:"general"`
	Budget  BudgetConfig  `toml:"budget"`
	Logging LoggingConfig `toml:"logging"`
}

// GeneralConfig holds database location and default identity.
type GeneralConfig struct {
	DBPath        string `toml:"db_path,omitempty" env:"COSTBOOK_DB"`
	DefaultTenant string `toml:"default_tenant,omitempty" env:"COSTBOOK_TENANT"`
	DefaultActor  string `toml:"default_actor,omitempty" env:"COSTBOOK_ACTOR"`
}

// BudgetConfig holds budget-behavior settings.
type BudgetConfig struct {
	// OverrunTolerancePct is the advisory overspend allowance, as a
	// percentage of a cost item's committed amount.
	OverrunTolerancePct float64 `toml:"overrun_tolerance_pct" env:"COSTBOOK_OVERRUN_TOLERANCE"`
	// BudgetWriteAttempts bounds the retry loop when a change-order approval
	// loses the optimistic budget write.
	BudgetWriteAttempts int `toml:"budget_write_attempts" env:"COSTBOOK_BUDGET_WRITE_ATTEMPTS"`
}

// LoggingConfig controls operation telemetry.
type LoggingConfig struct {
	// Operations enables slog output for service operations on stderr.
	Operations bool `toml:"operations" env:"COSTBOOK_LOG_OPERATIONS"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DBPath:        defaultDBPath(),
			DefaultTenant: "default",
		},
		Budget: BudgetConfig{
			OverrunTolerancePct: 10,
			BudgetWriteAttempts: 3,
		},
	}
}

func defaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "costbook", "costbook.db")
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "costbook")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "costbook")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file (defaults if absent), then applies environment
// overrides.
func Load() (Config, error) {
	return loadFrom(ConfigPath())
}

func loadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}

	return cfg, nil
}
