package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/monetr-client/internal/common"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("MONETR_TEST_DIR", "/var/lib/monetr")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: ""},
		{name: "tilde", path: "~", want: home},
		{name: "tilde prefix", path: "~/monetr.db", want: filepath.Join(home, "monetr.db")},
		{name: "env var", path: "$MONETR_TEST_DIR/monetr.db", want: "/var/lib/monetr/monetr.db"},
		{name: "absolute", path: "/tmp/monetr.db", want: "/tmp/monetr.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultAPITimeout, cfg.APITimeout)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.NotContains(t, cfg.StoragePath, "$HOME")
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("api.url", "http://localhost:4000")
	v.Set("api.timeout", "5s")
	v.Set("session.cookie_secure", false)
	v.Set("storage.path", "/tmp/monetr-test.db")
	v.Set("logging.level", "debug")
	v.Set("logging.format", "json")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4000", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "/tmp/monetr-test.db", cfg.StoragePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		wantErr error
		set     map[string]any
		name    string
	}{
		{name: "empty url", set: map[string]any{"api.url": ""}, wantErr: common.ErrMissingConfig},
		{name: "negative timeout", set: map[string]any{"api.timeout": "-1s"}, wantErr: common.ErrInvalidConfig},
		{name: "bad level", set: map[string]any{"logging.level": "loud"}, wantErr: common.ErrInvalidConfig},
		{name: "bad format", set: map[string]any{"logging.format": "xml"}, wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for key, value := range tt.set {
				v.Set(key, value)
			}
			_, err := Load(v)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
