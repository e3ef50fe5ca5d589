package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"formula-pad/internal/logger"

	"fyne.io/fyne/v2"
	"github.com/rs/zerolog"
)

const (
	DefaultRenderEndpoint = "https://chart.apis.google.com/chart"
	DefaultRenderTimeout  = 30 * time.Second
	DefaultHomepage       = "http://daruyanagi.net/"
)

// Config holds process level settings read from the environment
type Config struct {
	LogLevel       zerolog.Level
	LogFormat      string
	RenderEndpoint string
	RenderTimeout  time.Duration
	Homepage       string
}

// Default returns the configuration used when no environment overrides exist
func Default() Config {
	return Config{
		LogLevel:       zerolog.InfoLevel,
		LogFormat:      "console",
		RenderEndpoint: DefaultRenderEndpoint,
		RenderTimeout:  DefaultRenderTimeout,
		Homepage:       DefaultHomepage,
	}
}

// FromEnv overlays LOG_LEVEL and the FORMULAPAD_* variables onto Default
func FromEnv() (Config, error) {
	cfg := Default()

	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		level, valid := logger.ParseLevel(v)
		if !valid {
			return cfg, fmt.Errorf("invalid LOG_LEVEL %q", v)
		}
		cfg.LogLevel = level
	}

	if v := os.Getenv("FORMULAPAD_LOG_FORMAT"); v != "" {
		switch strings.ToLower(v) {
		case "json", "console":
			cfg.LogFormat = strings.ToLower(v)
		default:
			return cfg, fmt.Errorf("invalid FORMULAPAD_LOG_FORMAT %q", v)
		}
	}

	if v := os.Getenv("FORMULAPAD_RENDER_URL"); v != "" {
		if err := validateURL(v); err != nil {
			return cfg, fmt.Errorf("invalid FORMULAPAD_RENDER_URL: %w", err)
		}
		cfg.RenderEndpoint = v
	}

	if v := os.Getenv("FORMULAPAD_RENDER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid FORMULAPAD_RENDER_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("invalid FORMULAPAD_RENDER_TIMEOUT: must be positive, got %s", d)
		}
		cfg.RenderTimeout = d
	}

	if v := os.Getenv("FORMULAPAD_HOMEPAGE"); v != "" {
		if err := validateURL(v); err != nil {
			return cfg, fmt.Errorf("invalid FORMULAPAD_HOMEPAGE: %w", err)
		}
		cfg.Homepage = v
	}

	return cfg, nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

const autoRefreshKey = "auto_refresh"

// Settings are the user choices persisted between runs
type Settings struct {
	prefs fyne.Preferences
}

func NewSettings(prefs fyne.Preferences) *Settings {
	return &Settings{prefs: prefs}
}

func (s *Settings) AutoRefresh() bool {
	return s.prefs.BoolWithFallback(autoRefreshKey, true)
}

func (s *Settings) SetAutoRefresh(enabled bool) {
	s.prefs.SetBool(autoRefreshKey, enabled)
}
