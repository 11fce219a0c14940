package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/jsjsjsjee/FUTURE-ML-01/sales"
)

// Data source kinds
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	DataPath     string
	DataSource   string
	DataEncoding string
	DatabaseURL  string
	SalesTable   string
	LogLevel     string
	LogFormat    string
	MetricsFile  string
}

// Load reads a .env file if present, then the environment. The result is
// not validated so callers can apply overrides first.
func Load() *Config {
	// A missing .env file is not an error; the environment still applies.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv loads configuration from environment variables without validating it
func FromEnv() *Config {
	return &Config{
		DataPath:     getEnv("DATA_PATH", "data/Superstore.csv"),
		DataSource:   getEnv("DATA_SOURCE", SourceCSV),
		DataEncoding: getEnv("DATA_ENCODING", sales.EncodingLatin1),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		SalesTable:   getEnv("SALES_TABLE", sales.DefaultTable),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		MetricsFile:  getEnv("METRICS_FILE", ""),
	}
}

// Validate checks that the settings are usable together
func (c *Config) Validate() error {
	switch strings.ToLower(c.DataSource) {
	case SourceCSV:
		if c.DataPath == "" {
			return errors.New("DATA_PATH is required for the csv source")
		}
		if !sales.ValidEncoding(c.DataEncoding) {
			return fmt.Errorf("unsupported DATA_ENCODING %q", c.DataEncoding)
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres source")
		}
		if c.SalesTable == "" {
			return errors.New("SALES_TABLE is required for the postgres source")
		}
	default:
		return fmt.Errorf("unknown DATA_SOURCE %q: want %q or %q", c.DataSource, SourceCSV, SourcePostgres)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q: want text or json", c.LogFormat)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
