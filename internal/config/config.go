// Package config loads the application's own configuration (file locations,
// check interval) from a YAML file. User-facing preferences such as
// notification toggles live in the persisted state, not here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the top-level application configuration.
type Config struct {
	// DBPath is the SQLite snapshot location.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// OutboxDir is where email reminders are written.
	OutboxDir string `mapstructure:"outbox_dir" yaml:"outbox_dir"`

	// ReminderFrom and ReminderTo address composed email reminders.
	ReminderFrom string `mapstructure:"reminder_from" yaml:"reminder_from"`
	ReminderTo   string `mapstructure:"reminder_to" yaml:"reminder_to"`

	// CheckIntervalSec is how often (in seconds) the watcher re-evaluates
	// due-date state.
	CheckIntervalSec int `mapstructure:"check_interval_sec" yaml:"check_interval_sec"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/cadence/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "cadence", "config.yaml")
}

// defaultConfig returns a sensible default configuration.
func defaultConfig() *Config {
	dataDir := filepath.Join(".", "cadence-data")
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".local", "share", "cadence")
	}
	return &Config{
		DBPath:           filepath.Join(dataDir, "cadence.db"),
		OutboxDir:        filepath.Join(dataDir, "outbox"),
		ReminderFrom:     "cadence@localhost",
		ReminderTo:       "me@localhost",
		CheckIntervalSec: 3600,
	}
}

// Load reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func Load(path string) (*Config, error) {
	defaults := defaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("db_path", defaults.DBPath)
	v.SetDefault("outbox_dir", defaults.OutboxDir)
	v.SetDefault("reminder_from", defaults.ReminderFrom)
	v.SetDefault("reminder_to", defaults.ReminderTo)
	v.SetDefault("check_interval_sec", defaults.CheckIntervalSec)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.CheckIntervalSec <= 0 {
		cfg.CheckIntervalSec = defaults.CheckIntervalSec
	}

	return cfg, nil
}

// Save writes the given configuration to a YAML file at path, creating
// parent directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("db_path", cfg.DBPath)
	v.Set("outbox_dir", cfg.OutboxDir)
	v.Set("reminder_from", cfg.ReminderFrom)
	v.Set("reminder_to", cfg.ReminderTo)
	v.Set("check_interval_sec", cfg.CheckIntervalSec)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
