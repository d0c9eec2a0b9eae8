// Package config handles loading and managing application configuration
// from YAML files, an optional .env file and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/openclaw/qrgen/qr"
)

// RenderDefaults are the render options pre-selected on the form and used
// when a request or CLI invocation leaves them unset.
type RenderDefaults struct {
	ModuleSize int    `yaml:"module_size"`
	Border     int    `yaml:"border"`
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
	Escape     bool   `yaml:"escape"`
}

// Options converts the defaults into validated qr.Options.
func (d RenderDefaults) Options() (qr.Options, error) {
	fg, err := qr.ParseHexColor(d.Foreground)
	if err != nil {
		return qr.Options{}, fmt.Errorf("foreground: %w", err)
	}
	bg, err := qr.ParseHexColor(d.Background)
	if err != nil {
		return qr.Options{}, fmt.Errorf("background: %w", err)
	}
	opts := qr.Options{
		ModuleSize: d.ModuleSize,
		Border:     d.Border,
		Foreground: fg,
		Background: bg,
		Escape:     d.Escape,
	}
	if err := opts.Validate(); err != nil {
		return qr.Options{}, err
	}
	return opts, nil
}

// Config holds all application configuration values.
type Config struct {
	Port         int            `yaml:"port"`
	LogLevel     string         `yaml:"log_level"`
	MaxLogoBytes int64          `yaml:"max_logo_bytes"`
	ReadTimeout  Duration       `yaml:"read_timeout"`
	WriteTimeout Duration       `yaml:"write_timeout"`
	Defaults     RenderDefaults `yaml:"defaults"`
}

// Duration is a wrapper around time.Duration that supports YAML unmarshalling
// from human-readable strings like "30s", "5m", "1h".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Defaults returns a Config populated with default values.
func Defaults() *Config {
	return &Config{
		Port:         8556,
		LogLevel:     "info",
		MaxLogoBytes: 5 << 20,
		ReadTimeout:  Duration{30 * time.Second},
		WriteTimeout: Duration{60 * time.Second},
		Defaults: RenderDefaults{
			ModuleSize: 10,
			Border:     4,
			Foreground: "#000000",
			Background: "#FFFFFF",
		},
	}
}

// Load reads configuration from the YAML file at path, falling back to
// defaults if the file does not exist. Variables from a .env file in the
// working directory are loaded next (without replacing ones already set),
// and QRGEN_* environment variables override file and default values.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	applyEnvOverrides(cfg)

	if _, err := cfg.Defaults.Options(); err != nil {
		return nil, fmt.Errorf("render defaults: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies QRGEN_* environment variable overrides to cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("QRGEN_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("QRGEN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("QRGEN_MAX_LOGO_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxLogoBytes = n
		}
	}
	if v := os.Getenv("QRGEN_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ReadTimeout = Duration{d}
		}
	}
	if v := os.Getenv("QRGEN_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.WriteTimeout = Duration{d}
		}
	}
	if v := os.Getenv("QRGEN_MODULE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Defaults.ModuleSize = n
		}
	}
	if v := os.Getenv("QRGEN_BORDER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Defaults.Border = n
		}
	}
	if v := os.Getenv("QRGEN_FOREGROUND"); v != "" {
		cfg.Defaults.Foreground = v
	}
	if v := os.Getenv("QRGEN_BACKGROUND"); v != "" {
		cfg.Defaults.Background = v
	}
	if v := os.Getenv("QRGEN_ESCAPE"); v != "" {
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			cfg.Defaults.Escape = true
		case "false", "0", "no":
			cfg.Defaults.Escape = false
		}
	}
}
