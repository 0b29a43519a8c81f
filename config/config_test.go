package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		JWT: JWTConfig{
			SecretKey:     "test-secret-key-32-characters!!!",
			Issuer:        "jot",
			SessionExpiry: 168 * time.Hour,
			CookieName:    "token",
		},
		OTP: OTPConfig{
			Expiry:      5 * time.Minute,
			MaxAttempts: 3,
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, Validate(validConfig()))
	})

	t.Run("missing JWT secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWT.SecretKey = ""

		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT secret key is required")
	})

	t.Run("short JWT secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWT.SecretKey = "too-short"

		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("non positive session expiry", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWT.SessionExpiry = 0

		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session expiry must be positive")
	})

	t.Run("zero OTP attempts", func(t *testing.T) {
		cfg := validConfig()
		cfg.OTP.MaxAttempts = 0

		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max attempts")
	})

	t.Run("non positive OTP expiry", func(t *testing.T) {
		cfg := validConfig()
		cfg.OTP.Expiry = 0

		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expiry must be positive")
	})
}

func TestAppConfig_IsProduction(t *testing.T) {
	assert.False(t, AppConfig{Environment: "development"}.IsProduction())
	assert.False(t, AppConfig{Environment: ""}.IsProduction())
	assert.True(t, AppConfig{Environment: "production"}.IsProduction())
}

func TestMailConfig_Configured(t *testing.T) {
	assert.False(t, MailConfig{}.Configured())
	assert.False(t, MailConfig{Host: "smtp.example.com"}.Configured())
	assert.False(t, MailConfig{FromAddress: "noreply@example.com"}.Configured())
	assert.True(t, MailConfig{Host: "smtp.example.com", FromAddress: "noreply@example.com"}.Configured())
}
