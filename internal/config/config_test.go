package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"DATA_PATH", "DATA_SOURCE", "DATA_ENCODING", "DATABASE_URL", "SALES_TABLE", "LOG_LEVEL", "LOG_FORMAT", "METRICS_FILE"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg := FromEnv()
	assert.Equal(t, "data/Superstore.csv", cfg.DataPath)
	assert.Equal(t, SourceCSV, cfg.DataSource)
	assert.Equal(t, "latin1", cfg.DataEncoding)
	assert.Equal(t, "orders", cfg.SalesTable)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.MetricsFile)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DATA_SOURCE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/retail")
	t.Setenv("SALES_TABLE", "sales.orders")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("METRICS_FILE", "/tmp/forecast.prom")

	cfg := FromEnv()
	assert.Equal(t, SourcePostgres, cfg.DataSource)
	assert.Equal(t, "postgres://localhost/retail", cfg.DatabaseURL)
	assert.Equal(t, "sales.orders", cfg.SalesTable)
	assert.Equal(t, "/tmp/forecast.prom", cfg.MetricsFile)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DataPath:     "orders.csv",
			DataSource:   SourceCSV,
			DataEncoding: "latin1",
			SalesTable:   "orders",
			LogFormat:    "text",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid csv", func(*Config) {}, ""},
		{"unknown source", func(c *Config) { c.DataSource = "s3" }, "unknown DATA_SOURCE"},
		{"bad encoding", func(c *Config) { c.DataEncoding = "utf-16" }, "unsupported DATA_ENCODING"},
		{"missing path", func(c *Config) { c.DataPath = "" }, "DATA_PATH is required"},
		{"postgres without url", func(c *Config) { c.DataSource = SourcePostgres }, "DATABASE_URL is required"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "unknown LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SALES_TABLE=archive_orders\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("SALES_TABLE", "")
	require.NoError(t, os.Unsetenv("SALES_TABLE"))

	cfg := Load()
	assert.Equal(t, "archive_orders", cfg.SalesTable)
}
