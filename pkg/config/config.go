// Package config reads moodflow settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/unowned-ai/moodflow/pkg/utils"
)

const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	DBPath      string
	Store       string
	PostgresDSN string
	WAL         bool
	SyncMode    string
	AuthURL     string
	HTTPAddr    string
	LogLevel    string
	Timezone    string
}

// Load reads .env from the working directory when present, then the
// MOODFLOW_* environment variables. Real environment variables win over .env.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBPath:      getEnv("MOODFLOW_DB", utils.GetDefaultDBPathOnly()),
		Store:       getEnv("MOODFLOW_STORE", StoreSQLite),
		PostgresDSN: getEnv("MOODFLOW_POSTGRES_DSN", ""),
		WAL:         getEnvBool("MOODFLOW_WAL", true),
		SyncMode:    getEnv("MOODFLOW_SYNC", "FULL"),
		AuthURL:     getEnv("MOODFLOW_AUTH_URL", "http://localhost:5000"),
		HTTPAddr:    getEnv("MOODFLOW_HTTP_ADDR", ":8080"),
		LogLevel:    getEnv("MOODFLOW_LOG_LEVEL", "info"),
		Timezone:    getEnv("MOODFLOW_TIMEZONE", "UTC"),
	}
}

// Validate checks the settings that can be wrong independently of the
// command being run.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreSQLite:
	case StorePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("store %q requires MOODFLOW_POSTGRES_DSN or --postgres-dsn", c.Store)
		}
	default:
		return fmt.Errorf("unknown store %q (use %s or %s)", c.Store, StoreSQLite, StorePostgres)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the time zone that decides which calendar day is "today".
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// NewLogger builds the process logger. Output goes to w, which should be
// stderr so stdout stays clean for command output and MCP traffic.
func (c *Config) NewLogger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Stamp,
		Prefix:          "moodflow",
	})
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultVal
	}
	return b
}
