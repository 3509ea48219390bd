// Package config loads billbook's settings from the environment, optionally
// seeded from a .env file, applies defaults and validates the result.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// MySQLConfig holds the MySQL connection parameters.
type MySQLConfig struct {
	Host     string // MYSQL_HOST
	Port     int    // MYSQL_PORT
	User     string // MYSQL_USER
	Password string // MYSQL_PASSWORD
	Database string // MYSQL_DATABASE
}

// Config holds all configuration values for the application.
type Config struct {
	// Store
	Driver string // DB_DRIVER: sqlite|mysql
	DBPath string // DB_PATH, SQLite only
	MySQL  MySQLConfig

	// Logging
	LogLevel string // LOG_LEVEL: debug|info|warn|error

	// Presentation / export
	Currency  string // CURRENCY_SYMBOL, printed before amounts
	ExportDir string // EXPORT_DIR, where PDFs are written

	// Observability
	MetricsAddr string // METRICS_ADDR, empty disables the listener
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads a .env file (ENV_FILE, default ".env") if present, then the
// environment. Variables already set in the environment win over the file.
func Load() (Config, error) {
	envFile := getenv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	cfg := Config{
		Driver: strings.ToLower(getenv("DB_DRIVER", "sqlite")),
		DBPath: getenv("DB_PATH", "./data/billing.db"),
		MySQL: MySQLConfig{
			Host:     getenv("MYSQL_HOST", "localhost"),
			Port:     getint("MYSQL_PORT", 3306),
			User:     getenv("MYSQL_USER", "root"),
			Password: getenv("MYSQL_PASSWORD", ""),
			Database: getenv("MYSQL_DATABASE", "billing_db"),
		},

		LogLevel: strings.ToLower(getenv("LOG_LEVEL", "info")),

		Currency:  getenv("CURRENCY_SYMBOL", "Rs."),
		ExportDir: getenv("EXPORT_DIR", "."),

		MetricsAddr: strings.TrimSpace(os.Getenv("METRICS_ADDR")),
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error")
	}
	switch cfg.Driver {
	case "sqlite":
		if strings.TrimSpace(cfg.DBPath) == "" {
			return cfg, errors.New("DB_PATH must not be empty")
		}
	case "mysql":
		if strings.TrimSpace(cfg.MySQL.Host) == "" {
			return cfg, errors.New("MYSQL_HOST must not be empty")
		}
		if cfg.MySQL.Port <= 0 || cfg.MySQL.Port > 65535 {
			return cfg, errors.New("MYSQL_PORT must be between 1 and 65535")
		}
		if strings.TrimSpace(cfg.MySQL.Database) == "" {
			return cfg, errors.New("MYSQL_DATABASE must not be empty")
		}
	default:
		return cfg, errors.New("DB_DRIVER must be one of: sqlite, mysql")
	}

	return cfg, nil
}

// ---- helpers ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
