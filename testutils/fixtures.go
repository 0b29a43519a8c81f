package testutils

import (
	"time"

	"github.com/jotapp/jot/config"
	"golang.org/x/crypto/bcrypt"
)

func GetTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "Jot Test",
			URL:         "http://localhost:8080",
			Environment: "development",
		},
		JWT: config.JWTConfig{
			SecretKey:     "test-secret-key-32-characters!!!",
			Issuer:        "jot-test",
			SessionExpiry: 7 * 24 * time.Hour,
			CookieName:    "token",
		},
		Auth: config.AuthConfig{
			PasswordMinLength: 6,
			BcryptCost:        bcrypt.MinCost,
		},
		OTP: config.OTPConfig{
			Expiry:      5 * time.Minute,
			MaxAttempts: 3,
		},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			DSN:    ":memory:",
		},
	}
}

var TestUsers = struct {
	Valid struct {
		Email    string
		Password string
		FullName string
	}
}{
	Valid: struct {
		Email    string
		Password string
		FullName string
	}{
		Email:    "test@example.com",
		Password: "secret1",
		FullName: "Test User",
	},
}
