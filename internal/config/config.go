// Package config loads the mission-control configuration: a YAML file,
// then environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/recera/mission-control/pkg/zoom"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when no path is given
const DefaultPath = "mission-control.yaml"

// Config represents mission-control.yaml
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Fixture FixtureConfig `yaml:"fixture"`
	Zoom    ZoomConfig    `yaml:"zoom"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig contains the live web server configuration
type ServerConfig struct {
	Host string `yaml:"host" env:"MC_HOST"`
	Port int    `yaml:"port" env:"MC_PORT"`

	// Idle sessions are dropped after SessionMaxAge
	SessionMaxAge time.Duration `yaml:"sessionMaxAge" env:"MC_SESSION_MAX_AGE"`
}

// Addr returns host:port
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// FixtureConfig selects the cockpit dataset
type FixtureConfig struct {
	// Path to a YAML dataset; empty uses the embedded default
	Path string `yaml:"path,omitempty" env:"MC_FIXTURE"`

	// Watch reloads the dataset when the file changes
	Watch bool `yaml:"watch" env:"MC_WATCH"`
}

// ZoomConfig holds transition timing in milliseconds
type ZoomConfig struct {
	MotionMS int `yaml:"motionMs" env:"MC_MOTION_MS"`
	RevealMS int `yaml:"revealMs" env:"MC_REVEAL_MS"`
	DetailMS int `yaml:"detailMs" env:"MC_DETAIL_MS"`
}

// Timing converts the configured durations
func (z ZoomConfig) Timing() zoom.Timing {
	return zoom.Timing{
		Motion: time.Duration(z.MotionMS) * time.Millisecond,
		Reveal: time.Duration(z.RevealMS) * time.Millisecond,
		Detail: time.Duration(z.DetailMS) * time.Millisecond,
	}
}

// LogConfig configures the process logger
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level" env:"MC_LOG_LEVEL"`

	// Format is text or json
	Format string `yaml:"format" env:"MC_LOG_FORMAT"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	t := zoom.DefaultTiming()
	return &Config{
		Server: ServerConfig{
			Host:          "localhost",
			Port:          8080,
			SessionMaxAge: 24 * time.Hour,
		},
		Zoom: ZoomConfig{
			MotionMS: int(t.Motion / time.Millisecond),
			RevealMS: int(t.Reveal / time.Millisecond),
			DetailMS: int(t.Detail / time.Millisecond),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the config file at path, falling back to defaults when it
// does not exist, and applies environment overrides
func Load(path string) (*Config, error) {
	config, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := ParseEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFile reads the config file at path without environment overrides
func LoadFile(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyDefaults(&config)
	return &config, nil
}

// ParseEnv overrides fields of target from MC_* environment variables.
// Unset variables leave the field as is.
func ParseEnv(target *Config) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Save writes config to path
func Save(config *Config, path string) error {
	if path == "" {
		path = DefaultPath
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// applyDefaults applies default values to missing configuration
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.Server.Host == "" {
		config.Server.Host = defaults.Server.Host
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.SessionMaxAge == 0 {
		config.Server.SessionMaxAge = defaults.Server.SessionMaxAge
	}

	if config.Zoom.MotionMS == 0 {
		config.Zoom.MotionMS = defaults.Zoom.MotionMS
	}
	if config.Zoom.RevealMS == 0 {
		config.Zoom.RevealMS = defaults.Zoom.RevealMS
	}
	if config.Zoom.DetailMS == 0 {
		config.Zoom.DetailMS = defaults.Zoom.DetailMS
	}

	if config.Log.Level == "" {
		config.Log.Level = defaults.Log.Level
	}
	if config.Log.Format == "" {
		config.Log.Format = defaults.Log.Format
	}
}

// Validate reports every invalid setting
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Host == "" {
		errs = append(errs, errors.New("server.host is required"))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.SessionMaxAge <= 0 {
		errs = append(errs, fmt.Errorf("server.sessionMaxAge must be positive, got %s", c.Server.SessionMaxAge))
	}

	if c.Zoom.MotionMS <= 0 {
		errs = append(errs, fmt.Errorf("zoom.motionMs must be positive, got %d", c.Zoom.MotionMS))
	}
	if c.Zoom.RevealMS <= 0 {
		errs = append(errs, fmt.Errorf("zoom.revealMs must be positive, got %d", c.Zoom.RevealMS))
	}
	if c.Zoom.DetailMS <= 0 {
		errs = append(errs, fmt.Errorf("zoom.detailMs must be positive, got %d", c.Zoom.DetailMS))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not text or json", c.Log.Format))
	}

	if c.Fixture.Watch && c.Fixture.Path == "" {
		errs = append(errs, errors.New("fixture.watch needs fixture.path"))
	}

	return errors.Join(errs...)
}
