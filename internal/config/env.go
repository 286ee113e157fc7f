package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment override, e.g. INSTAQURAN_API_BASE_URL.
const EnvPrefix = "INSTAQURAN"

// EnvConfig holds the environment-based overrides.
// Empty or zero fields leave the file value in place.
type EnvConfig struct {
	// Env: INSTAQURAN_API_BASE_URL
	APIBaseURL string `envconfig:"API_BASE_URL"`

	// Env: INSTAQURAN_TRANSLATION_ID
	TranslationID int `envconfig:"TRANSLATION_ID"`

	// Env: INSTAQURAN_API_TIMEOUT (e.g. 10s)
	APITimeout string `envconfig:"API_TIMEOUT"`

	// Env: INSTAQURAN_INPUT_DEBOUNCE (e.g. 250ms)
	InputDebounce string `envconfig:"INPUT_DEBOUNCE"`

	// Env: INSTAQURAN_RENDER_SCALE
	RenderScale float64 `envconfig:"RENDER_SCALE"`

	// Env: INSTAQURAN_CHROME_BIN
	ChromeBin string `envconfig:"CHROME_BIN"`

	// Env: INSTAQURAN_DEBUGGER_URL
	DebuggerURL string `envconfig:"DEBUGGER_URL"`

	// Env: INSTAQURAN_OUTPUT_DIR
	OutputDir string `envconfig:"OUTPUT_DIR"`

	// Env: INSTAQURAN_DEBUG (turns file logging on; it cannot turn it off)
	Debug bool `envconfig:"DEBUG"`

	// Env: INSTAQURAN_LOG_LEVEL
	LogLevel string `envconfig:"LOG_LEVEL"`
}

// LoadFromEnv reads the INSTAQURAN_* variables.
func LoadFromEnv() (EnvConfig, error) {
	var env EnvConfig
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return EnvConfig{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return env, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	env, err := LoadFromEnv()
	if err != nil {
		return err
	}

	if env.APIBaseURL != "" {
		c.API.BaseURL = env.APIBaseURL
	}
	if env.TranslationID != 0 {
		c.API.TranslationID = env.TranslationID
	}
	if env.APITimeout != "" {
		c.API.Timeout = env.APITimeout
	}
	if env.InputDebounce != "" {
		c.Input.Debounce = env.InputDebounce
	}
	if env.RenderScale != 0 {
		c.Render.Scale = env.RenderScale
	}
	if env.ChromeBin != "" {
		c.Render.ChromeBin = env.ChromeBin
	}
	if env.DebuggerURL != "" {
		c.Render.DebuggerURL = env.DebuggerURL
	}
	if env.OutputDir != "" {
		c.Output.Dir = env.OutputDir
	}
	if env.Debug {
		c.Logging.DebugMode = true
	}
	if env.LogLevel != "" {
		c.Logging.Level = env.LogLevel
	}
	return nil
}

// LoadDotEnv loads environment variables from a .env file.
// If the file does not exist, it silently returns nil (not an error).
// Variables already present in the environment win.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	return godotenv.Load(path)
}
