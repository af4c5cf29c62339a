// Package config resolves todos settings from defaults, config.toml, the
// environment and command-line flags (in that order of precedence, lowest first).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// DefaultBaseURL is the public playground the client talks to.
	DefaultBaseURL = "https://playground.4geeks.com/todo"

	DefaultTimeout = 10 * time.Second

	FileName        = "config.toml"
	SessionFileName = "session.sqlite"
	LogFileName     = "todos.log"
)

// Config holds resolved settings.
type Config struct {
	BaseURL   string        `toml:"base_url"`
	LogLevel  string        `toml:"log_level"`
	LogFormat string        `toml:"log_format"`
	Timeout   time.Duration `toml:"timeout"`

	// Dir is where config.toml, the session database and the TUI log live.
	Dir string `toml:"-"`
}

// Defaults returns a Config with every field set to its built-in value.
func Defaults() *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		LogLevel:  "warn",
		LogFormat: "text",
		Timeout:   DefaultTimeout,
	}
}

// DefaultDir returns TODOS_CONFIG_DIR when set, otherwise ~/.todos.
func DefaultDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("TODOS_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".todos"), nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error; variables already set are left alone.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load resolves configuration for dir (DefaultDir when empty):
// defaults, then dir/config.toml, then TODOS_* environment variables.
func Load(dir string) (*Config, error) {
	if strings.TrimSpace(dir) == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		dir = d
	}

	cfg := Defaults()
	cfg.Dir = dir

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func loadFromEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv("TODOS_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("TODOS_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("TODOS_LOG_FORMAT")); v != "" {
		cfg.LogFormat = v
	}
	if v := strings.TrimSpace(os.Getenv("TODOS_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TODOS_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	return nil
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base_url is empty")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url must be an http(s) URL: %s", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	return nil
}

func (c *Config) SessionPath() string { return filepath.Join(c.Dir, SessionFileName) }

func (c *Config) LogPath() string { return filepath.Join(c.Dir, LogFileName) }

// EnsureDir creates the config directory (0700).
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0o700)
}
