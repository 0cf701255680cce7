package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type Config struct {
	CORSAllowedOrigins        []string      `koanf:"cors_allowed_origins"`
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseFilePath          string        `koanf:"database_file_path"`
	DatabaseMaxRetries        int           `koanf:"database_max_retries"`
	Hostname                  string        `koanf:"-"`
	RateLimitPerSecond        float64       `koanf:"rate_limit_per_second"`
	ServerHost                string        `koanf:"server_host"`
	ServerPort                int           `koanf:"server_port"`
}

const (
	environmentENV = "ENVIRONMENT"
	configFileENV  = "CONFIG_FILE"
	envPrefix      = "PAGEMARK_"
)

func New() (*Config, error) {
	// Optional .env file for local development.
	_ = godotenv.Load()

	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseMaxRetries:        5,
		Hostname:                  hostname,
		RateLimitPerSecond:        50,
		ServerPort:                4180,
	}

	switch os.Getenv(environmentENV) {
	case "development", "":
		loadDevelopmentConfig(cfg)
	case "test":
		loadTestConfig(cfg)
	case "production":
		loadProductionConfig(cfg)
	}

	if err := overlay(cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	return cfg, nil
}

// overlay applies the optional config file and PAGEMARK_-prefixed environment
// variables on top of the environment defaults. Only keys that are present
// override anything.
func overlay(cfg *Config) error {
	k := koanf.New(".")

	path := os.Getenv(configFileENV)
	if path == "" {
		if _, err := os.Stat("pagemark.yaml"); err == nil {
			path = "pagemark.yaml"
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return errors.WithStack(err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(k.Unmarshal("", cfg))
}
