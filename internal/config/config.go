package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Gemini     GeminiConfig
	Session    SessionConfig
	Onboarding OnboardingConfig
	Logging    LoggingConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

type GeminiConfig struct {
	APIKey      string
	FlashModel  string
	ImageModel  string
	Temperature float32
}

type SessionConfig struct {
	Secret    string
	TTL       time.Duration
	MaxActive int
	Cookie    string
}

type OnboardingConfig struct {
	// AvatarDelay is the simulated avatar generation time after style selection.
	AvatarDelay time.Duration
}

type LoggingConfig struct {
	Level string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = v.ReadInConfig()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("GEMINI_FLASH_MODEL", "gemini-3-flash-preview")
	v.SetDefault("GEMINI_IMAGE_MODEL", "gemini-3-pro-image-preview")
	v.SetDefault("GEMINI_TEMPERATURE", 0.7)
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_MAX_ACTIVE", 1024)
	v.SetDefault("SESSION_COOKIE", "mirrorfit_session")
	v.SetDefault("ONBOARDING_AVATAR_DELAY", "2500ms")
	v.SetDefault("LOG_LEVEL", "info")
}

func fromViper(v *viper.Viper) (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Host:           v.GetString("SERVER_HOST"),
			Port:           v.GetInt("SERVER_PORT"),
			Env:            v.GetString("ENV"),
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   5 * time.Minute,
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Gemini: GeminiConfig{
			APIKey:      v.GetString("GEMINI_API_KEY"),
			FlashModel:  v.GetString("GEMINI_FLASH_MODEL"),
			ImageModel:  v.GetString("GEMINI_IMAGE_MODEL"),
			Temperature: float32(v.GetFloat64("GEMINI_TEMPERATURE")),
		},
		Session: SessionConfig{
			Secret:    v.GetString("SESSION_SECRET"),
			TTL:       v.GetDuration("SESSION_TTL"),
			MaxActive: v.GetInt("SESSION_MAX_ACTIVE"),
			Cookie:    v.GetString("SESSION_COOKIE"),
		},
		Onboarding: OnboardingConfig{
			AvatarDelay: v.GetDuration("ONBOARDING_AVATAR_DELAY"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	// Sessions die with the process, so an ephemeral secret is acceptable.
	if config.Session.Secret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		config.Session.Secret = secret
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d is out of range", c.Server.Port)
	}
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("session secret must be at least 32 characters")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive")
	}
	if c.Session.MaxActive <= 0 {
		return fmt.Errorf("session max active must be positive")
	}
	if c.Onboarding.AvatarDelay < 0 {
		return fmt.Errorf("avatar delay must not be negative")
	}
	return nil
}

// Addr returns the listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// splitList parses a comma separated env value.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
