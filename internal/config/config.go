// Package config loads service configuration from the environment and an
// optional YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Web      WebConfig      `yaml:"web"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            string        `yaml:"port"             env:"PORT"                    env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	CORSOrigin      string        `yaml:"cors_origin"      env:"CORS_ALLOWED_ORIGIN"     env-default:"*"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// DatabaseConfig selects the store and holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"             env:"STORE_DRIVER"        env-default:"memory"`
	Host            string        `yaml:"host"               env:"DB_HOST"             env-default:"localhost"`
	Port            string        `yaml:"port"               env:"DB_PORT"             env-default:"5432"`
	User            string        `yaml:"user"               env:"DB_USER"             env-default:"postgres"`
	Password        string        `yaml:"password"           env:"DB_PASSWORD"         env-default:"postgres"`
	Name            string        `yaml:"name"               env:"DB_NAME"             env-default:"activities"`
	SSLMode         string        `yaml:"sslmode"            env:"DB_SSLMODE"          env-default:"disable"`
	MaxConns        int32         `yaml:"max_conns"          env:"DB_MAX_CONNS"        env-default:"20"`
	MinConns        int32         `yaml:"min_conns"          env:"DB_MIN_CONNS"        env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DB_MAX_CONN_LIFETIME" env-default:"30m"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DB_MAX_CONN_IDLE_TIME" env-default:"5m"`
	ConnectAttempts int           `yaml:"connect_attempts"   env:"DB_CONNECT_ATTEMPTS" env-default:"5"`
}

// DSN builds a libpq-compatible connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// WebConfig holds settings for the roster page.
type WebConfig struct {
	StaticDir string `yaml:"static_dir" env:"WEB_STATIC_DIR" env-default:"./web"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > env-default tags. The YAML path comes from
// CONFIG_PATH; without it only the environment is read.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the env tags cannot express.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMemory, DriverPostgres:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Database.Driver)
	}
	if c.Database.ConnectAttempts < 1 {
		return fmt.Errorf("config: DB_CONNECT_ATTEMPTS must be at least 1")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("config: PORT is required")
	}
	return nil
}
