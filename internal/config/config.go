package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512

	// Status panel layout
	PanelX      = 20
	PanelY      = 20
	PanelWidth  = 300
	PanelHeight = 150

	// Samples kept for the poll history strip
	HistorySize = 48
)

// Settings is the environment-driven configuration. Everything has a
// default; a dashboard box should run this with no environment at all.
type Settings struct {
	StatusURL    string        `env:"DASH_STATUS_URL" envDefault:"http://127.0.0.1:8880/status"`
	PollInterval time.Duration `env:"DASH_POLL_INTERVAL" envDefault:"5s"`

	// Rain theme: "r,g,b" triple and trail opacity. Malformed values fall
	// back to the built-in teal-green theme inside the rain package.
	ThemeRGB   string `env:"DASH_THEME_RGB"`
	ThemeTrail string `env:"DASH_THEME_TRAIL"`

	// Rain variant: "theme" or "pulse".
	Variant string `env:"DASH_RAIN_VARIANT" envDefault:"theme"`

	// Override for the continuity snapshot directory; empty means the OS
	// temp dir.
	StateDir string `env:"DASH_STATE_DIR"`

	// Disables the degradation chime.
	Mute bool `env:"DASH_MUTE" envDefault:"false"`
}

func Load() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
