package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points every path the config looks at into a temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv(EnvURL, "")
	t.Setenv(EnvToken, "")
	t.Setenv(EnvThemeFile, "")
	return dir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	configDir := filepath.Join(dir, "dealboard")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	if defaults.Quit != "q" {
		t.Errorf("Default Quit key = %s, want q", defaults.Quit)
	}
	if defaults.PickUp != " " {
		t.Errorf("Default PickUp key = %q, want space", defaults.PickUp)
	}
	if defaults.NextPipeline != "P" {
		t.Errorf("Default NextPipeline key = %s, want P", defaults.NextPipeline)
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() without config file failed: %v", err)
	}

	if cfg.KeyMappings.Quit != "q" {
		t.Errorf("Loaded config Quit key = %s, want q (default)", cfg.KeyMappings.Quit)
	}
	if cfg.Remote.BaseURL != defaultBaseURL {
		t.Errorf("BaseURL = %s, want %s", cfg.Remote.BaseURL, defaultBaseURL)
	}
	if cfg.Remote.Timeout != defaultTimeout {
		t.Errorf("Timeout = %s, want %s", cfg.Remote.Timeout, defaultTimeout)
	}
	if want := filepath.Join(dir, "state", "dealboard", "state.yaml"); cfg.SelectionPath() != want {
		t.Errorf("SelectionPath = %s, want %s", cfg.SelectionPath(), want)
	}
	if len(cfg.LegacyStages) == 0 {
		t.Error("expected default legacy stages")
	}
	if cfg.ColorScheme.Accent == "" {
		t.Error("expected default accent color")
	}
}

func TestLoadConfigWithFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `remote:
  base_url: "https://crm.example.com/api"
  timeout: 3s
log_level: debug
legacy_stages: [Open, Closed]
key_mappings:
  quit: "x"
  pick_up: "m"
theme:
  preset: wave
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with config file failed: %v", err)
	}

	if cfg.Remote.BaseURL != "https://crm.example.com/api" {
		t.Errorf("BaseURL = %s", cfg.Remote.BaseURL)
	}
	if cfg.Remote.Timeout != 3*time.Second {
		t.Errorf("Timeout = %s, want 3s", cfg.Remote.Timeout)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel = %s, want DEBUG", cfg.SlogLevel())
	}
	if len(cfg.LegacyStages) != 2 || cfg.LegacyStages[1] != "Closed" {
		t.Errorf("LegacyStages = %v", cfg.LegacyStages)
	}
	if cfg.KeyMappings.Quit != "x" || cfg.KeyMappings.PickUp != "m" {
		t.Errorf("custom keys not loaded: %+v", cfg.KeyMappings)
	}

	// Unspecified values should use defaults
	if cfg.KeyMappings.Drop != "enter" {
		t.Errorf("Drop key = %s, want enter (default)", cfg.KeyMappings.Drop)
	}
	if cfg.ColorScheme.Accent != "#957FB8" {
		t.Errorf("Accent = %s, want wave preset accent", cfg.ColorScheme.Accent)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "remote:\n  base_url: http://file\n  token: from-file\n")
	t.Setenv(EnvURL, "http://env:9000")
	t.Setenv(EnvToken, "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Remote.BaseURL != "http://env:9000" {
		t.Errorf("BaseURL = %s, want env override", cfg.Remote.BaseURL)
	}
	if cfg.Remote.Token != "from-env" {
		t.Errorf("Token = %s, want env override", cfg.Remote.Token)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "remote: [not, a, map")

	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestThemeFileLoading(t *testing.T) {
	dir := isolate(t)
	themePath := filepath.Join(dir, "theme.yaml")
	themeContent := `theme:
  accent: "#FF0000"
  value: "#00FF00"
`
	if err := os.WriteFile(themePath, []byte(themeContent), 0o644); err != nil {
		t.Fatalf("Failed to write theme file: %v", err)
	}
	t.Setenv(EnvThemeFile, themePath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ColorScheme.Accent != "#FF0000" {
		t.Errorf("Expected accent to be #FF0000, got %s", cfg.ColorScheme.Accent)
	}
	if cfg.ColorScheme.Value != "#00FF00" {
		t.Errorf("Expected value to be #00FF00, got %s", cfg.ColorScheme.Value)
	}
	if cfg.ColorScheme.ErrorFg == "" {
		t.Error("Expected error_fg to have default value")
	}
}

func TestSaveConfig(t *testing.T) {
	dir := isolate(t)

	cfg := Default()
	cfg.KeyMappings.Quit = "x"
	cfg.Remote.Token = "secret"

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	configPath := filepath.Join(dir, "dealboard", "config.yaml")
	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Config file not created at %s", configPath)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config mode = %v, want 0600", info.Mode().Perm())
	}

	cfg2, err := Load()
	if err != nil {
		t.Fatalf("Load() after Save() failed: %v", err)
	}
	if cfg2.KeyMappings.Quit != "x" {
		t.Errorf("Reloaded Quit key = %s, want x", cfg2.KeyMappings.Quit)
	}
	if cfg2.Remote.Token != "secret" {
		t.Errorf("Reloaded token = %s, want secret", cfg2.Remote.Token)
	}
	if cfg2.Remote.Timeout != defaultTimeout {
		t.Errorf("Reloaded timeout = %s", cfg2.Remote.Timeout)
	}
}
