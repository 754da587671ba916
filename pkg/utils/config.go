package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Booking   BookingConfig
	RateLimit RateLimitConfig
	Admin     AdminConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

// BookingConfig is the operating-hours grid: bookable slot boundaries run
// from OpenTime to CloseTime in SlotMinutes steps.
type BookingConfig struct {
	OpenTime    string
	CloseTime   string
	SlotMinutes int
}

type RateLimitConfig struct {
	WindowSeconds int
	MaxRequests   int
}

// AdminConfig seeds the bootstrap admin account. Leaving the username blank
// skips seeding.
type AdminConfig struct {
	Username string
	Password string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("OPEN_TIME", "09:00")
	viper.SetDefault("CLOSE_TIME", "21:00")
	viper.SetDefault("SLOT_MINUTES", 60)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("RATE_LIMIT_MAX_REQUESTS", 10)

	if err := viper.ReadInConfig(); err != nil {
		// Running without a .env file is fine, env vars still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Booking: BookingConfig{
			OpenTime:    viper.GetString("OPEN_TIME"),
			CloseTime:   viper.GetString("CLOSE_TIME"),
			SlotMinutes: viper.GetInt("SLOT_MINUTES"),
		},
		RateLimit: RateLimitConfig{
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
			MaxRequests:   viper.GetInt("RATE_LIMIT_MAX_REQUESTS"),
		},
		Admin: AdminConfig{
			Username: viper.GetString("ADMIN_USERNAME"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
	}

	return config, nil
}
