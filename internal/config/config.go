package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port     int    `envconfig:"SPASERVER_PORT" default:"3000"`
	BuildDir string `envconfig:"SPASERVER_BUILD_DIR" default:"./build"`
	LogLevel string `envconfig:"SPASERVER_LOG_LEVEL" default:"info"`
	LogDir   string `envconfig:"SPASERVER_LOG_DIR" default:"./logs"`

	// LiveReloadOrigin is appended to the CSP connect-src directive so the
	// dev-server websocket keeps working when the bundle is served locally.
	LiveReloadOrigin string `envconfig:"SPASERVER_LIVERELOAD_ORIGIN" default:"ws://localhost:*"`

	// FontStyleOrigin and FontOrigin are the external origins the app loads
	// its webfont stylesheets and font files from.
	FontStyleOrigin string `envconfig:"SPASERVER_FONT_STYLE_ORIGIN" default:"https://fonts.googleapis.com"`
	FontOrigin      string `envconfig:"SPASERVER_FONT_ORIGIN" default:"https://fonts.gstatic.com"`
}

// Load reads configuration from .env file (if present) then from environment variables.
// Environment variables override .env values.
func Load() (*Config, error) {
	// Load .env file if it exists. godotenv does NOT override already-set env vars,
	// so real environment variables take precedence over .env values.
	envFiles := []string{".env"}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				slog.Warn("failed to load .env file", "file", f, "error", err)
			} else {
				slog.Info("loaded .env file", "file", f)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port must be 1-65535, got %d", ErrInvalidConfig, c.Port)
	}
	if c.BuildDir == "" {
		return fmt.Errorf("%w: build directory must not be empty", ErrInvalidConfig)
	}
	return nil
}
