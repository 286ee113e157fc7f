package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"instaquran/internal/logging"
)

// Config holds all instaquran configuration.
type Config struct {
	// API configures the quran.com verse source.
	API APIConfig `yaml:"api"`

	// Input configures the chapter/verse form.
	Input InputConfig `yaml:"input"`

	// Render configures the headless browser rasterizer.
	Render RenderConfig `yaml:"render"`

	// Output configures where saved cards go.
	Output OutputConfig `yaml:"output"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the verse data source.
type APIConfig struct {
	BaseURL       string `yaml:"base_url"`
	TranslationID int    `yaml:"translation_id"` // 85 = Abdel Haleem
	Timeout       string `yaml:"timeout"`
}

// InputConfig configures validation feedback.
type InputConfig struct {
	Debounce string `yaml:"debounce"` // pause before inline errors appear
}

// RenderConfig configures card rasterization.
type RenderConfig struct {
	Scale           float64 `yaml:"scale"`       // device pixels per CSS pixel
	ChromeBin       string  `yaml:"chrome_bin"`  // empty = let the launcher find or download one
	DebuggerURL     string  `yaml:"debugger_url"` // connect to a running browser instead of launching
	Headless        bool    `yaml:"headless"`
	Timeout         string  `yaml:"timeout"`
	PreviewDebounce string  `yaml:"preview_debounce"` // pause after option changes before re-rendering
}

// OutputConfig configures the download sink.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	JSONFormat bool            `yaml:"json_format"`
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:       "https://api.quran.com/api/v4",
			TranslationID: 85,
			Timeout:       "15s",
		},
		Input: InputConfig{
			Debounce: "500ms",
		},
		Render: RenderConfig{
			Scale:           2,
			Headless:        true,
			Timeout:         "30s",
			PreviewDebounce: "300ms",
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the config file location inside a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, ".instaquran", "config.yaml")
}

// Load loads configuration from a YAML file, then applies environment overrides.
// A missing file yields the defaults. Call LoadDotEnv first to honour a .env file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// GetAPITimeout returns the HTTP timeout for verse fetches.
func (c *Config) GetAPITimeout() time.Duration {
	return parseDuration(c.API.Timeout, 15*time.Second)
}

// GetInputDebounce returns the validation debounce delay.
func (c *Config) GetInputDebounce() time.Duration {
	return parseDuration(c.Input.Debounce, 500*time.Millisecond)
}

// GetRenderTimeout returns the per-render timeout.
func (c *Config) GetRenderTimeout() time.Duration {
	return parseDuration(c.Render.Timeout, 30*time.Second)
}

// GetPreviewDebounce returns the re-render debounce delay.
func (c *Config) GetPreviewDebounce() time.Duration {
	return parseDuration(c.Render.PreviewDebounce, 300*time.Millisecond)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.TranslationID <= 0 {
		return fmt.Errorf("api.translation_id must be positive, got %d", c.API.TranslationID)
	}
	if c.Render.Scale < 1 || c.Render.Scale > 4 {
		return fmt.Errorf("render.scale must be between 1 and 4, got %g", c.Render.Scale)
	}
	for name, raw := range map[string]string{
		"api.timeout":             c.API.Timeout,
		"input.debounce":          c.Input.Debounce,
		"render.timeout":          c.Render.Timeout,
		"render.preview_debounce": c.Render.PreviewDebounce,
	} {
		if raw == "" {
			continue
		}
		if d, err := time.ParseDuration(raw); err != nil || d < 0 {
			return fmt.Errorf("%s: invalid duration %q", name, raw)
		}
	}
	return nil
}

// LoggingOptions converts the logging section for logging.Initialize.
func (c *Config) LoggingOptions() logging.Config {
	return logging.Config{
		DebugMode:  c.Logging.DebugMode,
		Level:      c.Logging.Level,
		JSONFormat: c.Logging.JSONFormat,
		Categories: c.Logging.Categories,
	}
}
