package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// ClientConfig configures the terminal assistant host.
type ClientConfig struct {
	APIBaseURL     string `toml:"api_base_url"`
	Token          string `toml:"token"`
	Language       string `toml:"language"`
	DebounceMillis int    `toml:"debounce_ms"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	PollMillis     int    `toml:"poll_ms"`
}

func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		APIBaseURL:     "http://localhost:8080",
		Language:       "JAVASCRIPT",
		DebounceMillis: 1000,
		TimeoutSeconds: 60,
		PollMillis:     250,
	}
}

// ClientConfigPath resolves the config file location.
// Resolution order: $TLEZONE_ASSIST_CONFIG > $XDG_CONFIG_HOME/tlezone/assist.toml > ~/.config/tlezone/assist.toml
func ClientConfigPath() string {
	if path := os.Getenv("TLEZONE_ASSIST_CONFIG"); path != "" {
		return path
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tlezone", "assist.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("/tmp", "tlezone", "assist.toml")
	}
	return filepath.Join(home, ".config", "tlezone", "assist.toml")
}

// LoadClientConfig reads path, falling back to defaults for a missing file
// and for unset keys. TLEZONE_API_URL and TLEZONE_TOKEN override the file.
func LoadClientConfig(path string) (*ClientConfig, error) {
	cfg := DefaultClientConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	defaults := DefaultClientConfig()
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaults.APIBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = defaults.Language
	}
	if cfg.DebounceMillis <= 0 {
		cfg.DebounceMillis = defaults.DebounceMillis
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if cfg.PollMillis <= 0 {
		cfg.PollMillis = defaults.PollMillis
	}

	if url := os.Getenv("TLEZONE_API_URL"); url != "" {
		cfg.APIBaseURL = url
	}
	if token := os.Getenv("TLEZONE_TOKEN"); token != "" {
		cfg.Token = token
	}
	return cfg, nil
}

func (c *ClientConfig) DebounceWindow() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

func (c *ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *ClientConfig) PollInterval() time.Duration {
	return time.Duration(c.PollMillis) * time.Millisecond
}
