package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig       `envPrefix:"JOT_APP_"`
	Server    ServerConfig    `envPrefix:"JOT_SERVER_"`
	Log       LogConfig       `envPrefix:"JOT_LOG_"`
	Database  DatabaseConfig  `envPrefix:"JOT_DATABASE_"`
	JWT       JWTConfig       `envPrefix:"JOT_JWT_"`
	Auth      AuthConfig      `envPrefix:"JOT_AUTH_"`
	OTP       OTPConfig       `envPrefix:"JOT_OTP_"`
	Mail      MailConfig      `envPrefix:"JOT_MAIL_"`
	Storage   StorageConfig   `envPrefix:"JOT_STORAGE_"`
	RateLimit RateLimitConfig `envPrefix:"JOT_RATELIMIT_"`
}

type AppConfig struct {
	Name        string `env:"NAME" envDefault:"Jot"`
	URL         string `env:"URL" envDefault:"http://localhost:8080"`
	Environment string `env:"ENV" envDefault:"development"`
}

func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
	Host string `env:"HOST" envDefault:"localhost"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
	Output string `env:"OUTPUT" envDefault:"stdout"`
}

type DatabaseConfig struct {
	Driver      string `env:"DRIVER" envDefault:"sqlite"`
	DSN         string `env:"DSN" envDefault:"jot.db"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
}

type JWTConfig struct {
	SecretKey     string        `env:"SECRET_KEY"`
	Issuer        string        `env:"ISSUER" envDefault:"jot"`
	SessionExpiry time.Duration `env:"SESSION_EXPIRY" envDefault:"168h"`
	CookieName    string        `env:"COOKIE_NAME" envDefault:"token"`
}

type AuthConfig struct {
	PasswordMinLength int `env:"PASSWORD_MIN_LENGTH" envDefault:"6"`
	BcryptCost        int `env:"BCRYPT_COST" envDefault:"10"`
}

type OTPConfig struct {
	Expiry      time.Duration `env:"EXPIRY" envDefault:"5m"`
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"3"`
}

type MailConfig struct {
	Host        string `env:"HOST"`
	Port        int    `env:"PORT" envDefault:"587"`
	Username    string `env:"USERNAME"`
	Password    string `env:"PASSWORD"`
	Encryption  string `env:"ENCRYPTION" envDefault:"starttls"`
	FromAddress string `env:"FROM_ADDRESS"`
	FromName    string `env:"FROM_NAME" envDefault:"Jot"`
}

func (m MailConfig) Configured() bool {
	return m.Host != "" && m.FromAddress != ""
}

type StorageConfig struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET" envDefault:"jot-files"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
	PublicURL string `env:"PUBLIC_URL"`
}

type RateLimitConfig struct {
	Enabled bool          `env:"ENABLED" envDefault:"true"`
	Rate    int           `env:"RATE" envDefault:"5"`
	Period  time.Duration `env:"PERIOD" envDefault:"1m"`
}

func LoadConfig(cfg *Config) error {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	if err := env.Parse(cfg); err != nil {
		return err
	}

	return Validate(cfg)
}

func Validate(cfg *Config) error {
	if err := validateJWTConfig(&cfg.JWT); err != nil {
		return err
	}
	if cfg.OTP.MaxAttempts < 1 {
		return fmt.Errorf("OTP max attempts must be at least 1, got %d", cfg.OTP.MaxAttempts)
	}
	if cfg.OTP.Expiry <= 0 {
		return fmt.Errorf("OTP expiry must be positive, got %s", cfg.OTP.Expiry)
	}
	return nil
}

func validateJWTConfig(cfg *JWTConfig) error {
	if cfg.SecretKey == "" {
		return fmt.Errorf("JWT secret key is required (JOT_JWT_SECRET_KEY)")
	}
	if len(cfg.SecretKey) < 32 {
		return fmt.Errorf("JWT secret key must be at least 32 characters, got %d", len(cfg.SecretKey))
	}
	if cfg.SessionExpiry <= 0 {
		return fmt.Errorf("JWT session expiry must be positive, got %s", cfg.SessionExpiry)
	}
	return nil
}
