package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{"GEMINI_API_KEY": "key"}))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "gemini-3-flash-preview", cfg.Gemini.FlashModel)
	assert.Equal(t, "gemini-3-pro-image-preview", cfg.Gemini.ImageModel)
	assert.InDelta(t, 0.7, cfg.Gemini.Temperature, 1e-6)
	assert.Equal(t, 2500*time.Millisecond, cfg.Onboarding.AvatarDelay)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Len(t, cfg.Session.Secret, 64)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"GEMINI_API_KEY":          "key",
		"SERVER_PORT":             9090,
		"SESSION_SECRET":          "0123456789abcdef0123456789abcdef",
		"ONBOARDING_AVATAR_DELAY": "0s",
		"ENV":                     "production",
		"CORS_ALLOWED_ORIGINS":    "https://mirrorfit.app, http://localhost:5173",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.Session.Secret)
	assert.Zero(t, cfg.Onboarding.AvatarDelay)
	assert.True(t, cfg.Server.IsProduction())
	assert.Equal(t, []string{"https://mirrorfit.app", "http://localhost:5173"}, cfg.Server.AllowedOrigins)
}

func TestFromViper_Validation(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		errMsg string
	}{
		{"missing api key", map[string]any{}, "GEMINI_API_KEY is required"},
		{"short secret", map[string]any{"GEMINI_API_KEY": "k", "SESSION_SECRET": "short"}, "at least 32 characters"},
		{"bad port", map[string]any{"GEMINI_API_KEY": "k", "SERVER_PORT": 70000}, "out of range"},
		{"negative delay", map[string]any{"GEMINI_API_KEY": "k", "ONBOARDING_AVATAR_DELAY": "-1s"}, "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromViper(newViper(tt.values))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
