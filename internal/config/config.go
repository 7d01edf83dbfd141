// Package config loads and saves tasker's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/fentz26/tasker/internal/models"
)

// Interaction surfaces.
const (
	InterfaceMenu = "menu"
	InterfaceTUI  = "tui"
)

var validate = validator.New()

// Config holds tasker configuration.
type Config struct {
	// DateLayout is the Go time layout used to read and print due dates.
	DateLayout string `yaml:"date_layout" validate:"required"`
	// Interface selects the surface started by the bare command: menu or tui.
	Interface string `yaml:"interface" validate:"oneof=menu tui"`
	// Color toggles lipgloss styling in the menu.
	Color bool `yaml:"color"`
	// LogFile receives log output. Empty discards it.
	LogFile string `yaml:"log_file,omitempty"`
	// Journal configures the activity journal.
	Journal JournalConfig `yaml:"journal"`
}

// JournalConfig configures the activity journal.
type JournalConfig struct {
	Enabled bool `yaml:"enabled"`
	// DSN is passed to the SQLite driver. ":memory:" keeps the journal in-process.
	DSN string `yaml:"dsn" validate:"required_if=Enabled true"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DateLayout: models.DefaultDateLayout,
		Interface:  InterfaceMenu,
		Color:      true,
		Journal: JournalConfig{
			Enabled: true,
			DSN:     ":memory:",
		},
	}
}

// LoadConfig loads configuration from a YAML file. A missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// HomePath returns ~/.tasker/config.yaml.
func HomePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(home, ".tasker", "config.yaml"), nil
}

// LoadConfigFromHome loads configuration from ~/.tasker/config.yaml.
func LoadConfigFromHome() (*Config, error) {
	path, err := HomePath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// SaveConfig saves configuration to a YAML file, creating parent directories if needed.
func SaveConfig(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	// A layout must survive a format/parse round trip down to the day.
	probe := models.Date(2024, time.May, 17)
	parsed, err := time.Parse(c.DateLayout, probe.Format(c.DateLayout))
	if err != nil || parsed.Year() != probe.Year() || parsed.YearDay() != probe.YearDay() {
		return fmt.Errorf("date_layout %q cannot represent a calendar date", c.DateLayout)
	}
	return nil
}
