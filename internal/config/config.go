// Package config loads and validates application configuration from an
// optional .env file, an optional config.yaml, and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// File is the optional YAML config read from the working directory.
// Environment variables override any value it sets.
const File = "config.yaml"

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `yaml:"port" env:"PORT" env-default:"8080"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`

	// LogLevel controls the minimum log level: debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	// CORSOriginsRaw is the comma-separated CORS_ORIGINS value; read
	// CORSOrigins instead.
	CORSOriginsRaw string `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"http://localhost:5173"`

	// CORSOrigins is CORSOriginsRaw split and trimmed.
	CORSOrigins []string `yaml:"-"`

	DBMaxConns       int32         `yaml:"db_max_conns" env:"DB_MAX_CONNS" env-default:"20"`
	DBMinConns       int32         `yaml:"db_min_conns" env:"DB_MIN_CONNS" env-default:"1"`
	DBAcquireTimeout time.Duration `yaml:"db_acquire_timeout" env:"DB_ACQUIRE_TIMEOUT" env-default:"5s"`

	// MaxBodyBytes caps request bodies; larger requests get 413.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"MAX_BODY_BYTES" env-default:"1048576"`

	// MigrateOnStart applies pending migrations before serving.
	MigrateOnStart bool `yaml:"migrate_on_start" env:"MIGRATE_ON_START" env-default:"true"`
}

// maxPoolConns is the hard ceiling for DB_MAX_CONNS.
const maxPoolConns = 100

// Load reads configuration and returns a validated Config.
// A .env file, when present, seeds variables that are not already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: read .env: %w", err)
	}

	var cfg Config
	if _, err := os.Stat(File); err == nil {
		if err := cleanenv.ReadConfig(File, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", File, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read environment: %w", err)
	}

	// A variable that is set but empty counts as unset.
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if strings.TrimSpace(cfg.CORSOriginsRaw) == "" {
		cfg.CORSOriginsRaw = "http://localhost:5173"
	}
	cfg.CORSOrigins = splitCSV(cfg.CORSOriginsRaw)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var problems []string

	if c.DatabaseURL == "" {
		problems = append(problems, "required environment variables not set: DATABASE_URL")
	}
	if c.DBMinConns < 1 || c.DBMinConns > c.DBMaxConns || c.DBMaxConns > maxPoolConns {
		problems = append(problems, fmt.Sprintf(
			"DB_MIN_CONNS (%d) and DB_MAX_CONNS (%d) must satisfy 1 <= min <= max <= %d",
			c.DBMinConns, c.DBMaxConns, maxPoolConns))
	}
	if c.DBAcquireTimeout <= 0 {
		problems = append(problems, "DB_ACQUIRE_TIMEOUT must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		problems = append(problems, "MAX_BODY_BYTES must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
