// Package config loads the rosterd configuration from defaults and
// environment variables with validation.
package config

import (
	"time"
)

// Config represents the complete configuration for the rosterd service.
// It provides type-safe access to all configuration values with validation.
type Config struct {
	Server   ServerConfig   `koanf:"server"   validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Redis    RedisConfig    `koanf:"redis"    validate:"required"`
	Cache    CacheConfig    `koanf:"cache"`
	Runtime  RuntimeConfig  `koanf:"runtime"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `koanf:"host"             validate:"required"        env:"SERVER_HOST"`
	Port            int           `koanf:"port"             validate:"min=1,max=65535" env:"SERVER_PORT"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"                            env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig contains database connection configuration.
type DatabaseConfig struct {
	ConnString      string        `koanf:"conn_string"       env:"DATABASE_CONN_STRING"`
	Host            string        `koanf:"host"              env:"DATABASE_HOST"`
	Port            string        `koanf:"port"              env:"DATABASE_PORT"`
	User            string        `koanf:"user"              env:"DATABASE_USER"`
	Password        string        `koanf:"password"          env:"DATABASE_PASSWORD"`
	DBName          string        `koanf:"name"              env:"DATABASE_NAME"`
	SSLMode         string        `koanf:"ssl_mode"          env:"DATABASE_SSL_MODE"`
	AutoMigrate     bool          `koanf:"auto_migrate"      env:"DATABASE_AUTO_MIGRATE"`
	MaxOpenConns    int           `koanf:"max_open_conns"    env:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `koanf:"max_idle_conns"    env:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" env:"DATABASE_CONN_MAX_LIFETIME"`
}

// RedisConfig contains the cache collaborator connection configuration.
type RedisConfig struct {
	URL      string `koanf:"url"      env:"REDIS_URL"`
	Host     string `koanf:"host"     env:"REDIS_HOST"`
	Port     string `koanf:"port"     env:"REDIS_PORT"`
	Password string `koanf:"password" env:"REDIS_PASSWORD"`
	DB       int    `koanf:"db"       env:"REDIS_DB"`
}

// CacheConfig controls the advisory list cache behavior.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled" env:"CACHE_ENABLED"`
	TTL     time.Duration `koanf:"ttl"     env:"CACHE_TTL"`
}

// RuntimeConfig contains runtime behavior configuration.
type RuntimeConfig struct {
	Environment string `koanf:"environment" validate:"oneof=development staging production" env:"RUNTIME_ENVIRONMENT"`
	LogLevel    string `koanf:"log_level"   validate:"oneof=debug info warn error"          env:"RUNTIME_LOG_LEVEL"`
}

// Default returns the default configuration values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Password:        "",
			DBName:          "rosterd",
			SSLMode:         "disable",
			AutoMigrate:     true,
			MaxOpenConns:    20,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6379",
			DB:   0,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Second,
		},
		Runtime: RuntimeConfig{
			Environment: "development",
			LogLevel:    "info",
		},
	}
}
