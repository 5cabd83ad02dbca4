// ABOUTME: Configuration loader for the storesync console
// ABOUTME: Resolves API URL and timeouts from flags, environment, and .env

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is used when neither flag nor environment provide one.
const DefaultAPIURL = "http://localhost:5000/api"

// Config holds resolved settings for the console.
type Config struct {
	// APIURL is the fixed base endpoint of the StoreSync backend,
	// including the /api prefix.
	APIURL string

	// RequestTimeout bounds every HTTP request.
	RequestTimeout time.Duration

	// ConfigDir is where the credential file and debug log live.
	ConfigDir string

	// Debug enables the TUI file logger.
	Debug bool
}

// Load resolves configuration. flagURL (from --api-url) wins over
// STORESYNC_API_URL, which wins over the default. A .env file in the
// working directory is loaded first so local setups need no exports.
func Load(flagURL string) *Config {
	// Ignore a missing .env; it is optional.
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:         DefaultAPIURL,
		RequestTimeout: 30 * time.Second,
		ConfigDir:      DefaultConfigDir(),
	}

	if env := os.Getenv("STORESYNC_API_URL"); env != "" {
		cfg.APIURL = env
	}
	if flagURL != "" {
		cfg.APIURL = flagURL
	}

	if v := os.Getenv("STORESYNC_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}

	if v := os.Getenv("STORESYNC_DEBUG"); v == "1" || v == "true" {
		cfg.Debug = true
	}

	return cfg
}

// DefaultConfigDir returns the config directory following the XDG spec.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "storesync")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "storesync")
}
