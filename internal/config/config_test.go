package config

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"LOG_LEVEL", "FORMULAPAD_LOG_FORMAT", "FORMULAPAD_RENDER_URL", "FORMULAPAD_RENDER_TIMEOUT", "FORMULAPAD_HOMEPAGE"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("FORMULAPAD_LOG_FORMAT", "JSON")
	t.Setenv("FORMULAPAD_RENDER_URL", "http://localhost:8080/chart")
	t.Setenv("FORMULAPAD_RENDER_TIMEOUT", "5s")
	t.Setenv("FORMULAPAD_HOMEPAGE", "https://example.com/")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "http://localhost:8080/chart", cfg.RenderEndpoint)
	assert.Equal(t, 5*time.Second, cfg.RenderTimeout)
	assert.Equal(t, "https://example.com/", cfg.Homepage)
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"LOG_LEVEL":                 "loud",
		"FORMULAPAD_LOG_FORMAT":     "xml",
		"FORMULAPAD_RENDER_URL":     "ftp://example.com",
		"FORMULAPAD_RENDER_TIMEOUT": "-1s",
		"FORMULAPAD_HOMEPAGE":       "not a url",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestSettingsAutoRefresh(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	settings := NewSettings(app.Preferences())
	assert.True(t, settings.AutoRefresh())

	settings.SetAutoRefresh(false)
	assert.False(t, settings.AutoRefresh())
	assert.False(t, NewSettings(app.Preferences()).AutoRefresh())
}
