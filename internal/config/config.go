// Package config loads the dealboard configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/dealboard/internal/config/colors"
)

// Environment overrides
const (
	EnvURL       = "DEALBOARD_URL"
	EnvToken     = "DEALBOARD_TOKEN"
	EnvThemeFile = "DEALBOARD_THEME_FILE"
)

const (
	defaultBaseURL = "http://127.0.0.1:7420"
	defaultTimeout = 10 * time.Second
)

// RemoteConfig locates the remote deal store
type RemoteConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token,omitempty"`
	Timeout time.Duration `yaml:"timeout"`
}

// Config represents the application configuration
type Config struct {
	Remote   RemoteConfig `yaml:"remote"`
	StateDir string       `yaml:"state_dir"`
	LogLevel string       `yaml:"log_level"`

	// LegacyStages are the columns used for deals that belong to no pipeline
	LegacyStages []string `yaml:"legacy_stages"`

	KeyMappings KeyMappings        `yaml:"key_mappings"`
	ColorScheme colors.ColorScheme `yaml:"theme"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads config from the user's config directory.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads config from an explicit path
func LoadFrom(configPath string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		slog.Debug("no config file, using defaults", "path", configPath)
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
		}
	}

	loadThemeFile(&cfg)
	cfg.applyEnv()
	cfg.applyDefaults()

	return &cfg, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o600)
}

// SelectionPath is the file holding the persisted pipeline selection
func (c *Config) SelectionPath() string {
	return filepath.Join(c.StateDir, "state.yaml")
}

// SlogLevel maps LogLevel to a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Path returns the path to the config file
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "dealboard", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "dealboard", "config.yaml"), nil
}

// loadThemeFile merges the theme from DEALBOARD_THEME_FILE when set
func loadThemeFile(cfg *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		slog.Warn("could not read theme file", "path", themeFile, "error", err)
		return
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}
	if err := yaml.Unmarshal(themeData, &themeConfig); err != nil {
		slog.Warn("could not parse theme file", "path", themeFile, "error", err)
		return
	}
	cfg.ColorScheme.MergeFrom(themeConfig.Theme, false)
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvURL)); v != "" {
		c.Remote.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvToken)); v != "" {
		c.Remote.Token = v
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Remote.BaseURL == "" {
		c.Remote.BaseURL = defaultBaseURL
	}
	if c.Remote.Timeout <= 0 {
		c.Remote.Timeout = defaultTimeout
	}
	if c.StateDir == "" {
		c.StateDir = defaultStateDir()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if len(c.LegacyStages) == 0 {
		c.LegacyStages = []string{"New", "Contacted", "Qualified", "Won", "Lost"}
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}

func defaultStateDir() string {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, "dealboard")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".dealboard"
	}
	return filepath.Join(homeDir, ".dealboard")
}
