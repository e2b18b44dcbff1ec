// Package config loads, validates and persists carbontrack settings.
//
// Settings come from three layers, later layers winning:
//  1. built-in defaults (New)
//  2. ~/.carbontrack/config.yaml, section by section (ShallowMergeYAML)
//  3. CARBONTRACK_* environment variables, including any set by a .env file
//     in the working directory
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rshade/carbontrack/internal/kvstore"
)

const redactedSecret = "********"

// CurrentVersion is the config schema version written by New and Save.
const CurrentVersion = "1.0.0"

// DefaultRedirectDelay is how long the log form waits before switching to
// the dashboard after a successful submission.
const DefaultRedirectDelay = 1500 * time.Millisecond

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Config is the full carbontrack configuration.
type Config struct {
	Version   string          `yaml:"version"   validate:"required"`
	Store     StoreConfig     `yaml:"store"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
	Dashboard DashboardConfig `yaml:"dashboard"`

	path string
}

// StoreConfig selects the persistence backend for the activity log.
type StoreConfig struct {
	Backend   string      `yaml:"backend"             validate:"oneof=file memory redis"`
	Directory string      `yaml:"directory,omitempty"`
	Key       string      `yaml:"key"                 validate:"required,max=128,excludesall=/\\"`
	Redis     RedisConfig `yaml:"redis,omitempty"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	URL      string `yaml:"url,omitempty"`
	Addr     string `yaml:"addr,omitempty"     validate:"omitempty,hostname_port"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"       validate:"gte=0,lte=15"`
	Prefix   string `yaml:"prefix,omitempty"`
}

// OutputConfig controls how commands render results.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" validate:"oneof=table json"`
}

// LoggingConfig controls the diagnostic logger.
type LoggingConfig struct {
	Level  string `yaml:"level"          validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format"         validate:"oneof=console json"`
	File   string `yaml:"file,omitempty"`
}

// DashboardConfig controls the interactive views.
type DashboardConfig struct {
	RedirectDelay time.Duration `yaml:"redirect_delay" validate:"gte=0"`
}

// New returns the effective configuration: defaults, then the config file if
// one exists, then environment overrides. A broken config file is ignored so
// the CLI stays usable; `carbontrack config validate` reports it.
func New() *Config {
	cfg := Defaults()

	path := ConfigPath()
	cfg.path = path
	if _, err := os.Stat(path); err == nil {
		merged := Defaults()
		if mergeErr := ShallowMergeYAML(merged, path); mergeErr == nil {
			merged.path = path
			cfg = merged
		}
	}

	loadDotEnv()
	cfg.ApplyEnvOverrides()
	return cfg
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Version: CurrentVersion,
		Store: StoreConfig{
			Backend: kvstore.BackendFile,
			Key:     "carbonActivities",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Output: OutputConfig{
			DefaultFormat: FormatTable,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Dashboard: DashboardConfig{
			RedirectDelay: DefaultRedirectDelay,
		},
	}
}

// Load reads the config file at path on top of the defaults without applying
// environment overrides. Unlike New it reports every problem.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if err := ShallowMergeYAML(cfg, path); err != nil {
		return nil, err
	}
	cfg.path = path
	return cfg, nil
}

// Path returns the file this configuration was loaded from or will be saved to.
func (c *Config) Path() string {
	if c.path == "" {
		return ConfigPath()
	}
	return c.path
}

// Save writes the configuration as YAML, atomically.
func (c *Config) Save() error {
	return c.SaveTo(c.Path())
}

// SaveTo writes the configuration to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing config: %w", err)
	}
	c.path = path
	return nil
}

// Validate checks field constraints and the schema version.
func (c *Config) Validate() error {
	if err := validate().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, describeFieldError(verrs[0]))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Store.Backend == kvstore.BackendRedis && c.Store.Redis.Addr == "" && c.Store.Redis.URL == "" {
		return fmt.Errorf("%w: store.redis needs addr or url", ErrInvalidConfig)
	}
	return CheckVersion(c.Version)
}

// StoreOptions translates the store section into backend options.
func (c *Config) StoreOptions() kvstore.Options {
	return kvstore.Options{
		Backend:   c.Store.Backend,
		Directory: c.Store.Directory,
		Redis: kvstore.RedisOptions{
			URL:      c.Store.Redis.URL,
			Addr:     c.Store.Redis.Addr,
			Password: c.Store.Redis.Password,
			DB:       c.Store.Redis.DB,
			Prefix:   c.Store.Redis.Prefix,
		},
	}
}

// Redacted returns a copy of c with secrets masked, for display.
func (c *Config) Redacted() Config {
	out := *c
	if out.Store.Redis.Password != "" {
		out.Store.Redis.Password = redactedSecret
	}
	if out.Store.Redis.URL != "" {
		if u, err := url.Parse(out.Store.Redis.URL); err == nil {
			out.Store.Redis.URL = u.Redacted()
		} else {
			out.Store.Redis.URL = redactedSecret
		}
	}
	return out
}

// loadDotEnv loads .env from the working directory. Variables already set in
// the environment are left alone; a missing file is fine.
func loadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	_ = godotenv.Load()
}
