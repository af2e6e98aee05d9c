// Package config defines the types that configure the client. An
// absent config file yields a fully defaulted configuration.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/goccy/go-yaml"
)

type Config struct {
	API      API      `yaml:"api"`
	Storage  Storage  `yaml:"storage"`
	Bookings Bookings `yaml:"bookings"`
	Catalog  Catalog  `yaml:"catalog"`
	Logger   Logger   `yaml:"logger"`
}

type API struct {
	BaseURL string        `yaml:"baseURL" default:"http://localhost:5000"`
	Timeout time.Duration `yaml:"timeout" default:"10s"`
}

// Storage selects the persistence adapter backend.
type Storage struct {
	Backend string `yaml:"backend" default:"file"`
	Path    string `yaml:"path"`
	Valkey  Valkey `yaml:"valkey"`
}

type Valkey struct {
	Address string `yaml:"address" default:"localhost:6379"`
	Prefix  string `yaml:"prefix" default:"hostelhunt"`
}

// Bookings selects the booking store implementation: "remote" against
// the live backend, "fixture" for the seeded offline variant.
type Bookings struct {
	Mode string `yaml:"mode" default:"remote"`
}

type Catalog struct {
	CacheTTL time.Duration `yaml:"cacheTTL" default:"30s"`
}

type Logger struct {
	Level  string `yaml:"level" default:"info"`
	Format string `yaml:"format" default:"text"`
}

const (
	BackendFile   = "file"
	BackendValkey = "valkey"

	ModeRemote  = "remote"
	ModeFixture = "fixture"
)

// Load reads the config file at path. An empty path selects
// DefaultPath; a missing file at the default path is not an error and
// yields the defaulted config.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("applying config defaults: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if _, err := url.Parse(c.API.BaseURL); err != nil {
		return fmt.Errorf("invalid api.baseURL: %w", err)
	}

	switch c.Storage.Backend {
	case BackendFile, BackendValkey:
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}

	switch c.Bookings.Mode {
	case ModeRemote, ModeFixture:
	default:
		return fmt.Errorf("unknown bookings.mode %q", c.Bookings.Mode)
	}

	return nil
}

// StatePath returns the file store location, defaulting next to the
// config file under the user's home directory.
func (c *Config) StatePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}

	return filepath.Join(configDir(), "state.json")
}

// DefaultPath is the config file location used when --config is not
// given.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return filepath.Join(home, ".hostelhunt")
}
