// Package config loads afl-tables settings from an optional TOML file.
//
// Every setting has a default, so a missing file is not an error. Values set on the
// command line are applied on top of the loaded configuration by the cli package.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"github.com/pfrederiksen/afl-tables/internal/logger"
)

const (
	DefaultBaseURL     = "https://afltables.com/afl/"
	DefaultUserAgent   = "afl-tables/1.0 (github.com/pfrederiksen/afl-tables)"
	DefaultTimeout     = 30 * time.Second
	DefaultConcurrency = 4
	DefaultListen      = ":8080"
	DefaultLogMaxSize  = 50
)

// Duration is a time.Duration that decodes from TOML strings such as "30s"
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Log holds logging settings
type Log struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
}

// Config holds all runtime settings
type Config struct {
	BaseURL     string   `toml:"base_url"`
	UserAgent   string   `toml:"user_agent"`
	Timeout     Duration `toml:"timeout"`
	Strict      bool     `toml:"strict"`
	Concurrency int      `toml:"concurrency"`
	Listen      string   `toml:"listen"`
	Log         Log      `toml:"log"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		UserAgent:   DefaultUserAgent,
		Timeout:     Duration{DefaultTimeout},
		Strict:      true,
		Concurrency: DefaultConcurrency,
		Listen:      DefaultListen,
		Log: Log{
			Level:     "info",
			MaxSizeMB: DefaultLogMaxSize,
		},
	}
}

// Load reads the TOML file at path over the defaults. An empty path returns the
// defaults. Keys the file sets that Config does not know about are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	var err error

	u, perr := url.Parse(c.BaseURL)
	if perr != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		err = multierr.Append(err, fmt.Errorf("base_url must be an absolute http(s) URL, got %q", c.BaseURL))
	}
	if c.Timeout.Duration <= 0 {
		err = multierr.Append(err, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.Concurrency < 1 {
		err = multierr.Append(err, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}
	if _, lerr := logger.ParseLevel(c.Log.Level); lerr != nil {
		err = multierr.Append(err, lerr)
	}
	if c.Log.MaxSizeMB < 1 {
		err = multierr.Append(err, fmt.Errorf("log.max_size_mb must be at least 1, got %d", c.Log.MaxSizeMB))
	}

	return err
}

// Logger builds the logger described by the log settings
func (c Config) Logger() (*logger.Logger, error) {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	if c.Log.File != "" {
		return logger.NewFile(level, c.Log.File, c.Log.MaxSizeMB), nil
	}
	return logger.New(level, os.Stderr), nil
}
