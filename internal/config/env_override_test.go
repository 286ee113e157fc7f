package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("strings and numbers replace file values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INSTAQURAN_API_BASE_URL", "http://localhost:9000/v4")
		t.Setenv("INSTAQURAN_TRANSLATION_ID", "20")
		t.Setenv("INSTAQURAN_INPUT_DEBOUNCE", "100ms")
		t.Setenv("INSTAQURAN_RENDER_SCALE", "3")
		t.Setenv("INSTAQURAN_OUTPUT_DIR", "/tmp/cards")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())

		assert.Equal(t, "http://localhost:9000/v4", cfg.API.BaseURL)
		assert.Equal(t, 20, cfg.API.TranslationID)
		assert.Equal(t, "100ms", cfg.Input.Debounce)
		assert.Equal(t, 3.0, cfg.Render.Scale)
		assert.Equal(t, "/tmp/cards", cfg.Output.Dir)
	})

	t.Run("unset variables keep file values", func(t *testing.T) {
		clearEnv(t)

		cfg := DefaultConfig()
		cfg.Render.ChromeBin = "/usr/bin/chromium"
		require.NoError(t, cfg.applyEnvOverrides())

		assert.Equal(t, "/usr/bin/chromium", cfg.Render.ChromeBin)
		assert.Equal(t, 85, cfg.API.TranslationID)
	})

	t.Run("debug only turns logging on", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INSTAQURAN_DEBUG", "true")
		t.Setenv("INSTAQURAN_LOG_LEVEL", "debug")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.True(t, cfg.Logging.DebugMode)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("malformed number is an error", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INSTAQURAN_TRANSLATION_ID", "eighty-five")

		cfg := DefaultConfig()
		assert.Error(t, cfg.applyEnvOverrides())
	})

	t.Run("Load applies overrides after the file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api:\n  translation_id: 131\n"), 0644))
		t.Setenv("INSTAQURAN_TRANSLATION_ID", "20")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 20, cfg.API.TranslationID)
	})
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("sets unset variables but never overrides the environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("INSTAQURAN_LOG_LEVEL", "error")

		path := filepath.Join(t.TempDir(), ".env")
		content := "INSTAQURAN_OUTPUT_DIR=from-dotenv\nINSTAQURAN_LOG_LEVEL=debug\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		t.Cleanup(func() { os.Unsetenv("INSTAQURAN_OUTPUT_DIR") })

		require.NoError(t, LoadDotEnv(path))

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, "from-dotenv", cfg.Output.Dir)
		assert.Equal(t, "error", cfg.Logging.Level)
	})
}
