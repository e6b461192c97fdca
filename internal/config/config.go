// Package config loads the environment-driven application settings.
// A configs/.env file is honored in development; production supplies real
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config aggregates every externally supplied setting.
type Config struct {
	Port    string
	GinMode string

	DB    DBConfig
	Token TokenConfig
	Email EmailConfig

	BirthdayJobHours   int
	AssessmentJobHours int
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the postgres connection string.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// TokenConfig holds the JWT signing settings. All values are opaque
// configuration inputs; nothing is hard-coded.
type TokenConfig struct {
	Secret        string
	Algorithm     string
	Issuer        string
	Audience      string
	ExpiryMinutes int
}

// EmailConfig holds the transactional email API credentials.
type EmailConfig struct {
	APIURL     string
	APIKey     string
	SenderID   string
	SenderName string
}

// Load reads configs/.env if present and assembles the configuration.
func Load() Config {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Debug().Msg("no configs/.env file found, relying on environment")
	}

	cfg := Config{
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "debug"),
		DB: DBConfig{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     getenv("DB_USER", "postgres"),
			Password: getenv("DB_PASSWORD", "postgres"),
			Name:     getenv("DB_NAME", "carehub"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
		Token: TokenConfig{
			Secret:        os.Getenv("JWT_SECRET_KEY"),
			Algorithm:     getenv("JWT_ALGORITHM", "HS256"),
			Issuer:        getenv("JWT_ISSUER", "carehub"),
			Audience:      getenv("JWT_AUDIENCE", "carehub-clients"),
			ExpiryMinutes: getenvInt("JWT_EXPIRATION_MINUTES", 60),
		},
		Email: EmailConfig{
			APIURL:     os.Getenv("EMAIL_API_URL"),
			APIKey:     os.Getenv("EMAIL_API_KEY"),
			SenderID:   os.Getenv("EMAIL_SENDER_ID"),
			SenderName: getenv("EMAIL_SENDER_NAME", "CareHub"),
		},
		BirthdayJobHours:   getenvInt("BIRTHDAY_JOB_HOURS", 12),
		AssessmentJobHours: getenvInt("ASSESSMENT_JOB_HOURS", 24),
	}

	if cfg.Token.Secret == "" {
		if cfg.GinMode == "release" {
			log.Fatal().Msg("JWT_SECRET_KEY is required in release mode")
		}
		cfg.Token.Secret = "dev_only_signing_key" // development fallback
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer setting, using default")
		return fallback
	}
	return n
}
