package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-quake-client/pkg/client"
)

// Config holds the settings the tools need to build a client.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	LogLevel     string
	Retries      int
	MinMagnitude float64
}

const (
	defaultConfigPath = "~/.config/quake/config.toml"
	defaultLogLevel   = "warn"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:  client.DefaultBaseURL,
		LogLevel: defaultLogLevel,
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, errors.Wrap(err, "open config")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}

	var raw struct {
		BaseURL      string   `toml:"base_url"`
		Timeout      string   `toml:"timeout"`
		LogLevel     string   `toml:"log_level"`
		Retries      *int     `toml:"retries"`
		MinMagnitude *float64 `toml:"min_magnitude"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.Timeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, errors.Wrapf(err, "parse timeout %q", v)
		}
		if timeout < 0 {
			return Config{}, errors.Errorf("timeout must not be negative, got %s", v)
		}
		cfg.Timeout = timeout
	}
	if raw.Retries != nil {
		if *raw.Retries < 0 {
			return Config{}, errors.Errorf("retries must not be negative, got %d", *raw.Retries)
		}
		cfg.Retries = *raw.Retries
	}
	if raw.MinMagnitude != nil {
		cfg.MinMagnitude = *raw.MinMagnitude
	}

	return cfg, nil
}

// ClientOptions converts the configuration into client options.
func (c Config) ClientOptions() []client.ClientOption {
	opts := []client.ClientOption{client.WithTimeout(c.Timeout)}
	if c.BaseURL != "" {
		opts = append(opts, client.WithBaseURL(c.BaseURL))
	}
	return opts
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolve home dir")
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
