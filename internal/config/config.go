// Package config loads healthmetrics settings from defaults, an optional
// YAML file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"time"

	"healthmetrics/internal/domain"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all healthmetrics configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Shell    ShellConfig    `yaml:"shell"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Session  SessionConfig  `yaml:"session"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ShellConfig is the presentation state handed to the TUI and the HTTP
// shell endpoint.
type ShellConfig struct {
	Theme      string   `yaml:"theme"` // light, dark
	Tabs       []string `yaml:"tabs"`
	Onboarding string   `yaml:"onboarding"`
}

// DefaultsConfig pre-fills the compute form.
type DefaultsConfig struct {
	Activity string            `yaml:"activity"`
	Macros   domain.MacroGoals `yaml:"macros"`
}

// SessionConfig controls anonymous session lifetime.
type SessionConfig struct {
	TTL           time.Duration `yaml:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// Themes are the supported shell themes.
var Themes = []string{"light", "dark"}

// Tabs are the shell sections, in display order.
var Tabs = []string{"calculator", "nutrition", "progress", "achievements", "reminders", "quiz"}

const defaultOnboarding = `# Welcome to healthmetrics

Enter your **weight**, **height**, **age** and **sex**, pick an activity level
and press *enter* to compute:

- Body Mass Index and its category
- Basal Metabolic Rate
- Daily calorie target
- Recommended water intake
- Protein, fat and carbohydrate targets

Switch sections with *tab*, toggle the theme with *ctrl+t*.
`

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
		Shell: ShellConfig{
			Theme:      "light",
			Tabs:       append([]string(nil), Tabs...),
			Onboarding: defaultOnboarding,
		},
		Defaults: DefaultsConfig{
			Activity: domain.Sedentary.Name(),
			Macros:   domain.DefaultMacroGoals,
		},
		Session: SessionConfig{
			TTL:           24 * time.Hour,
			SweepInterval: 10 * time.Minute,
		},
	}
}

// Load builds a Config. A missing .env or an empty path is not an error; a
// path that does not exist is.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("HM_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("HM_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("HM_THEME"); v != "" {
		c.Shell.Theme = v
	}
	if v := os.Getenv("HM_METRICS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HM_METRICS_ENABLED: %w", err)
		}
		c.Metrics.Enabled = b
	}
	return nil
}

// Validate rejects settings the shells cannot honour.
func (c Config) Validate() error {
	if !slices.Contains(Themes, c.Shell.Theme) {
		return fmt.Errorf("shell.theme: unknown theme %q", c.Shell.Theme)
	}
	if len(c.Shell.Tabs) == 0 {
		return errors.New("shell.tabs: at least one tab is required")
	}
	for _, t := range c.Shell.Tabs {
		if !slices.Contains(Tabs, t) {
			return fmt.Errorf("shell.tabs: unknown tab %q", t)
		}
	}
	if _, err := domain.ParseActivityLevel(c.Defaults.Activity); err != nil {
		return fmt.Errorf("defaults.activity: %w", err)
	}
	if err := c.Defaults.Macros.Validate(); err != nil {
		return fmt.Errorf("defaults.macros: %w", err)
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl: must be > 0")
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return errors.New("metrics.path: required when metrics are enabled")
	}
	return nil
}
