package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// DefaultLocation is the config file looked up when no location is supplied
const DefaultLocation = "uicontract.yaml"

// Environment variables overriding config file values
const (
	EnvExtractor       = "UICONTRACT_EXTRACTOR"
	EnvMaxUnits        = "UICONTRACT_MAX_UNITS"
	EnvFormat          = "UICONTRACT_FORMAT"
	EnvOutput          = "UICONTRACT_OUTPUT"
	EnvLogLevel        = "UICONTRACT_LOG_LEVEL"
	EnvSourceDateEpoch = "SOURCE_DATE_EPOCH"
)

// LoggingConfig defines the logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Config is the top-level configuration struct.
type Config struct {
	Extractor       string        `yaml:"extractor"`
	MaxUnits        int           `yaml:"maxUnits"`
	Extensions      []string      `yaml:"extensions"`
	SkipTests       bool          `yaml:"skipTests"`
	Output          string        `yaml:"output"`
	Format          string        `yaml:"format"`
	ProjectPath     string        `yaml:"projectPath"`
	Reproducible    bool          `yaml:"reproducible"`
	SourceDateEpoch int64         `yaml:"sourceDateEpoch"`
	CacheSize       int           `yaml:"cacheSize"`
	Logging         LoggingConfig `yaml:"logging"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Extractor:  "heuristic",
		MaxUnits:   5,
		Extensions: []string{".tsx", ".jsx", ".ts", ".js"},
		SkipTests:  true,
		Format:     "json",
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load reads .env, the YAML config file and environment overrides, in that order.
// A missing file is an error only when location was explicitly supplied.
func Load(ctx context.Context, location string) (*Config, error) {
	_ = godotenv.Load()
	cfg := Default()
	explicit := location != ""
	if !explicit {
		location = DefaultLocation
	}
	fs := afs.New()
	exists, _ := fs.Exists(ctx, location)
	switch {
	case exists:
		data, err := fs.DownloadWithURL(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", location, err)
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", location, err)
		}
	case explicit:
		return nil, fmt.Errorf("config file not found: %s", location)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields with non-empty environment variables
func (c *Config) ApplyEnv() error {
	if value := env(EnvExtractor); value != "" {
		c.Extractor = value
	}
	if value := env(EnvMaxUnits); value != "" {
		maxUnits, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxUnits, err)
		}
		c.MaxUnits = maxUnits
	}
	if value := env(EnvFormat); value != "" {
		c.Format = value
	}
	if value := env(EnvOutput); value != "" {
		c.Output = value
	}
	if value := env(EnvLogLevel); value != "" {
		c.Logging.Level = value
	}
	if value := env(EnvSourceDateEpoch); value != "" {
		epoch, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSourceDateEpoch, err)
		}
		c.SourceDateEpoch = epoch
		c.Reproducible = true
	}
	return nil
}

// Validate checks config values
func (c *Config) Validate() error {
	switch strings.ToLower(c.Extractor) {
	case "", "heuristic", "treesitter", "tree-sitter":
	default:
		return fmt.Errorf("unsupported extractor: %s", c.Extractor)
	}
	switch strings.ToLower(c.Format) {
	case "", "json", "yaml", "yml":
	default:
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
	if c.MaxUnits < 0 {
		return fmt.Errorf("maxUnits must not be negative: %d", c.MaxUnits)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cacheSize must not be negative: %d", c.CacheSize)
	}
	return nil
}

// Clock returns the clock used for document timestamps; reproducible runs use SourceDateEpoch
func (c *Config) Clock() func() time.Time {
	if !c.Reproducible {
		return time.Now
	}
	epoch := time.Unix(c.SourceDateEpoch, 0).UTC()
	return func() time.Time { return epoch }
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
