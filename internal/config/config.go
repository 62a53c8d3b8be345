// Package config loads application configuration.
//
// Sources, in priority order:
//  1. CONFIG_PATH environment variable
//  2. the --config command-line flag
//  3. neither: environment variables and built-in defaults only
//
// Individual values in the YAML file can always be overridden by the
// environment variable named in the field's env tag.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage backends selectable with the storage key.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Config is the root configuration structure.
type Config struct {
	// Env controls log format and verbosity: "dev", "staging" or "prod".
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// Storage selects the backend: "memory" or "sqlite". Both keep data in
	// process memory only.
	Storage string `yaml:"storage" env:"STORAGE" env-default:"memory"`

	HTTPServer `yaml:"http_server"`
}

// HTTPServer holds settings for the serve command.
type HTTPServer struct {
	Addr            string        `yaml:"address"          env:"HTTP_SERVER_ADDR"   env-default:"localhost:8082"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"HTTP_READ_TIMEOUT"  env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"HTTP_IDLE_TIMEOUT"  env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"   env-default:"5s"`
}

// Load resolves the config path (CONFIG_PATH first, then flagPath), reads
// it and validates the result. With no path at all, only the environment
// and defaults are used.
func Load(flagPath string) (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = flagPath
	}

	var cfg Config
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("cannot read config from env: %w", err)
		}
	} else {
		if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load that exits the process on failure. If it returns,
// the config is valid.
func MustLoad(flagPath string) *Config {
	cfg, err := Load(flagPath)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Storage {
	case StorageMemory, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage %q: want %q or %q", c.Storage, StorageMemory, StorageSQLite)
	}
	if c.Addr == "" {
		return errors.New("http_server.address must not be empty")
	}
	return nil
}
