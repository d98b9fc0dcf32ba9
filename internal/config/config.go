package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/monetr-client/internal/common"
)

// Defaults for settings missing from the config file and environment.
const (
	DefaultAPIURL      = "https://my.monetr.app"
	DefaultAPITimeout  = 30 * time.Second
	DefaultStoragePath = "$HOME/.local/share/monetr/monetr.db"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"
)

// Config is the resolved client configuration.
type Config struct {
	APIURL       string
	CookieDomain string
	StoragePath  string
	LogLevel     string
	LogFormat    string
	APITimeout   time.Duration
	CookieSecure bool
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.url", DefaultAPIURL)
	v.SetDefault("api.timeout", DefaultAPITimeout)
	v.SetDefault("session.cookie_domain", "")
	v.SetDefault("session.cookie_secure", true)
	v.SetDefault("storage.path", DefaultStoragePath)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		APIURL:       v.GetString("api.url"),
		APITimeout:   v.GetDuration("api.timeout"),
		CookieDomain: v.GetString("session.cookie_domain"),
		CookieSecure: v.GetBool("session.cookie_secure"),
		StoragePath:  ExpandPath(v.GetString("storage.path")),
		LogLevel:     v.GetString("logging.level"),
		LogFormat:    v.GetString("logging.format"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that do not belong to a single component.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("%w: api.url", common.ErrMissingConfig)
	}
	if c.APITimeout < 0 {
		return fmt.Errorf("%w: api.timeout cannot be negative", common.ErrInvalidConfig)
	}
	if c.StoragePath == "" {
		return fmt.Errorf("%w: storage.path", common.ErrMissingConfig)
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// ConfigDir returns the directory searched for config.yaml.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "monetr"), nil
}
