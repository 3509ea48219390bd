package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points ENV_FILE at a missing file and clears every key Load reads.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	for _, k := range []string{
		"DB_DRIVER", "DB_PATH", "MYSQL_HOST", "MYSQL_PORT", "MYSQL_USER",
		"MYSQL_PASSWORD", "MYSQL_DATABASE", "LOG_LEVEL", "CURRENCY_SYMBOL",
		"EXPORT_DIR", "METRICS_ADDR",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Driver)
	assert.Equal(t, "./data/billing.db", cfg.DBPath)
	assert.Equal(t, MySQLConfig{Host: "localhost", Port: 3306, User: "root", Database: "billing_db"}, cfg.MySQL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "Rs.", cfg.Currency)
	assert.Equal(t, ".", cfg.ExportDir)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoad_Overrides(t *testing.T) {
	isolate(t)
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("MYSQL_PORT", "3307")
	t.Setenv("MYSQL_USER", "billing")
	t.Setenv("MYSQL_PASSWORD", "secret")
	t.Setenv("MYSQL_DATABASE", "shop")
	t.Setenv("LOG_LEVEL", "warning")
	t.Setenv("CURRENCY_SYMBOL", "$")
	t.Setenv("EXPORT_DIR", "/tmp/out")
	t.Setenv("METRICS_ADDR", " :9100 ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Driver)
	assert.Equal(t, MySQLConfig{Host: "db.internal", Port: 3307, User: "billing", Password: "secret", Database: "shop"}, cfg.MySQL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "$", cfg.Currency)
	assert.Equal(t, "/tmp/out", cfg.ExportDir)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
}

func TestLoad_BadPortFallsBackToDefault(t *testing.T) {
	isolate(t)
	t.Setenv("MYSQL_PORT", "nope")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3306, cfg.MySQL.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"log level", map[string]string{"LOG_LEVEL": "verbose"}},
		{"driver", map[string]string{"DB_DRIVER": "oracle"}},
		{"mysql port", map[string]string{"DB_DRIVER": "mysql", "MYSQL_PORT": "70000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	isolate(t)
	t.Setenv("LOG_LEVEL", "verbose")
	assert.Panics(t, func() { MustLoad() })
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CURRENCY_SYMBOL=EUR\nDB_PATH=/var/lib/billbook/bills.db\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	// Unset rather than empty: godotenv only fills variables that are absent.
	os.Unsetenv("CURRENCY_SYMBOL")
	os.Unsetenv("DB_PATH")
	t.Cleanup(func() {
		os.Unsetenv("CURRENCY_SYMBOL")
		os.Unsetenv("DB_PATH")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, "/var/lib/billbook/bills.db", cfg.DBPath)
}
