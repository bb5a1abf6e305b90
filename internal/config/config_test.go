package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, 60*time.Second, cfg.AITimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 3, cfg.RenderAttempts)
	assert.Equal(t, "English", cfg.DefaultLanguage)
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"PORT":             "8080",
		"DATABASE_URL":     "postgres://localhost/studio",
		"AI_TIMEOUT":       "15s",
		"LOG_LEVEL":        "debug",
		"RENDER_ATTEMPTS":  "5",
		"DEFAULT_LANGUAGE": "Portuguese",
		"CHROME_PATH":      "  ",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres://localhost/studio", cfg.DatabaseURL)
	assert.Equal(t, 15*time.Second, cfg.AITimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 5, cfg.RenderAttempts)
	assert.Equal(t, "Portuguese", cfg.DefaultLanguage)
	assert.Equal(t, "", cfg.ChromePath)
}

func TestFromLookup_Invalid(t *testing.T) {
	for key, value := range map[string]string{
		"AI_TIMEOUT":      "soon",
		"LOG_LEVEL":       "chatty",
		"RENDER_ATTEMPTS": "0",
	} {
		_, err := FromLookup(lookupFrom(map[string]string{key: value}))
		assert.ErrorIs(t, err, ErrInvalid, key)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.env")
	require.NoError(t, os.WriteFile(path, []byte("RESUME_STUDIO_TEST_PORT=9999\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("RESUME_STUDIO_TEST_PORT") })

	_, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9999", os.Getenv("RESUME_STUDIO_TEST_PORT"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}
