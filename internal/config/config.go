// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultEndpoint is the cocktail search endpoint used when none is configured.
const DefaultEndpoint = "https://api.api-ninjas.com/v1/cocktail"

// Config holds all cocktails configuration.
type Config struct {
	API     API     `yaml:"api"`
	Search  Search  `yaml:"search"`
	Logging Logging `yaml:"logging"`
}

// API holds the remote service settings.
type API struct {
	Endpoint string        `yaml:"endpoint"`
	Key      string        `yaml:"key"`
	Timeout  time.Duration `yaml:"timeout"` // 0 leaves the transport default in place
}

// Search holds interactive search timing.
type Search struct {
	Debounce   time.Duration `yaml:"debounce"`
	ErrorReset time.Duration `yaml:"error_reset"`
}

// Logging holds log file settings.
type Logging struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults.
// The API key has no default and must come from a config file or the environment.
func DefaultConfig() Config {
	return Config{
		API: API{
			Endpoint: DefaultEndpoint,
		},
		Search: Search{
			Debounce:   700 * time.Millisecond,
			ErrorReset: 3 * time.Second,
		},
		Logging: Logging{
			File:  "~/.local/share/cocktails/cocktails.log",
			Level: "INFO",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files and empty paths are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.API.Endpoint == "" {
		return errors.New("config: api.endpoint cannot be empty")
	}
	u, err := url.Parse(c.API.Endpoint)
	if err != nil {
		return fmt.Errorf("config: api.endpoint %q: %w", c.API.Endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: api.endpoint must be an absolute http(s) URL, got %q", c.API.Endpoint)
	}
	if c.API.Key == "" {
		return errors.New("config: api.key cannot be empty (set COCKTAILS_API_KEY)")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("config: api.timeout must be non-negative, got %v", c.API.Timeout)
	}
	if c.Search.Debounce <= 0 {
		return fmt.Errorf("config: search.debounce must be positive, got %v", c.Search.Debounce)
	}
	if c.Search.ErrorReset <= 0 {
		return fmt.Errorf("config: search.error_reset must be positive, got %v", c.Search.ErrorReset)
	}
	switch strings.ToUpper(c.Logging.Level) {
	case "", "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
		// valid
	default:
		return fmt.Errorf("config: logging.level must be DEBUG, INFO, WARN or ERROR, got %q", c.Logging.Level)
	}
	return nil
}

// LoadDotEnv loads KEY=value pairs from a .env file into the process
// environment. Variables that are already set are left alone. A missing file
// is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: COCKTAILS_API_KEY, COCKTAILS_ENDPOINT, COCKTAILS_TIMEOUT,
// COCKTAILS_LOG_FILE, COCKTAILS_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("COCKTAILS_API_KEY"); v != "" {
		c.API.Key = v
	}
	if v := os.Getenv("COCKTAILS_ENDPOINT"); v != "" {
		c.API.Endpoint = v
	}
	if v := os.Getenv("COCKTAILS_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid COCKTAILS_TIMEOUT %q: %w", v, err)
		}
		c.API.Timeout = d
	}
	if v := os.Getenv("COCKTAILS_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("COCKTAILS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	API     *rawAPI     `yaml:"api"`
	Search  *rawSearch  `yaml:"search"`
	Logging *rawLogging `yaml:"logging"`
}

type rawAPI struct {
	Endpoint *string        `yaml:"endpoint"`
	Key      *string        `yaml:"key"`
	Timeout  *time.Duration `yaml:"timeout"`
}

type rawSearch struct {
	Debounce   *time.Duration `yaml:"debounce"`
	ErrorReset *time.Duration `yaml:"error_reset"`
}

type rawLogging struct {
	File  *string `yaml:"file"`
	Level *string `yaml:"level"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.API != nil {
		if layer.API.Endpoint != nil {
			c.API.Endpoint = *layer.API.Endpoint
		}
		if layer.API.Key != nil {
			c.API.Key = *layer.API.Key
		}
		if layer.API.Timeout != nil {
			c.API.Timeout = *layer.API.Timeout
		}
	}
	if layer.Search != nil {
		if layer.Search.Debounce != nil {
			c.Search.Debounce = *layer.Search.Debounce
		}
		if layer.Search.ErrorReset != nil {
			c.Search.ErrorReset = *layer.Search.ErrorReset
		}
	}
	if layer.Logging != nil {
		if layer.Logging.File != nil {
			c.Logging.File = *layer.Logging.File
		}
		if layer.Logging.Level != nil {
			c.Logging.Level = *layer.Logging.Level
		}
	}
}
