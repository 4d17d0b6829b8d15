package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	HTTPAddr    string
	DatabaseURL string
	DBMaxConns  int
	JWTSecret   string
	LogLevel    string
	Environment string

	CronSpecPendingReminder string
	PendingReminderAge      time.Duration
	AllowReprocess          bool

	TelegramToken   string // Optional; Telegram delivery is disabled when empty
	AdminTelegramID int64
	AdminUserID     int64
}

// TelegramEnabled reports whether admin notifications should be mirrored to Telegram.
func (c *AppConfig) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.AdminTelegramID != 0
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("CRON_SPEC_PENDING_REMINDER", "0 9 * * 1-5") // 9 AM on weekdays
	v.SetDefault("PENDING_REMINDER_AGE", "24h")
	v.SetDefault("DOCUMENTS_ALLOW_REPROCESS", false)
	v.SetDefault("ADMIN_USER_ID", 1)
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load does not override variables that are already set.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &AppConfig{
		HTTPAddr:                v.GetString("HTTP_ADDR"),
		DBMaxConns:              v.GetInt("DB_MAX_OPEN_CONNS"),
		JWTSecret:               v.GetString("JWT_SECRET"),
		LogLevel:                strings.ToLower(v.GetString("LOG_LEVEL")),
		Environment:             strings.ToLower(v.GetString("ENVIRONMENT")),
		CronSpecPendingReminder: v.GetString("CRON_SPEC_PENDING_REMINDER"),
		AllowReprocess:          v.GetBool("DOCUMENTS_ALLOW_REPROCESS"),
		TelegramToken:           v.GetString("TELEGRAM_TOKEN"),
		AdminTelegramID:         v.GetInt64("ADMIN_TELEGRAM_ID"),
		AdminUserID:             v.GetInt64("ADMIN_USER_ID"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	if cfg.DBMaxConns <= 0 {
		return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %d", cfg.DBMaxConns)
	}

	age, err := time.ParseDuration(v.GetString("PENDING_REMINDER_AGE"))
	if err != nil {
		return nil, fmt.Errorf("invalid PENDING_REMINDER_AGE: %w", err)
	}
	cfg.PendingReminderAge = age

	cfg.DatabaseURL = v.GetString("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL, err = buildDatabaseURL(v)
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// buildDatabaseURL assembles a PostgreSQL URL from the discrete DB_* variables.
func buildDatabaseURL(v *viper.Viper) (string, error) {
	user := v.GetString("DB_USER")
	if user == "" {
		return "", fmt.Errorf("DATABASE_URL or DB_USER is not set")
	}
	name := v.GetString("DB_NAME")
	if name == "" {
		return "", fmt.Errorf("DATABASE_URL or DB_NAME is not set")
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, v.GetString("DB_PASSWORD")),
		Host:     fmt.Sprintf("%s:%s", v.GetString("DB_HOST"), v.GetString("DB_PORT")),
		Path:     "/" + name,
		RawQuery: url.Values{"sslmode": {v.GetString("DB_SSLMODE")}}.Encode(),
	}
	return u.String(), nil
}
