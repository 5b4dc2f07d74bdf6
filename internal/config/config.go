// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/smartreno/smartreno/internal/booking"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for smartreno.
type Config struct {
	LogLevel     string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile      string        `mapstructure:"log_file" yaml:"log_file"`
	ServiceAreas []string      `mapstructure:"service_areas" yaml:"service_areas"`
	Estimators   []string      `mapstructure:"estimators" yaml:"estimators"`
	DaysAhead    int           `mapstructure:"days_ahead" yaml:"days_ahead"`
	Availability float64       `mapstructure:"availability" yaml:"availability"`
	SubmitDelay  time.Duration `mapstructure:"submit_delay" yaml:"submit_delay"`
	Seed         uint64        `mapstructure:"seed" yaml:"seed"`
}

// Defaults returns the configuration used when nothing is configured.
func Defaults() *Config {
	return &Config{
		LogLevel:     "info",
		LogFile:      "",
		ServiceAreas: slices.Clone(booking.DefaultServiceAreas),
		Estimators:   slices.Clone(booking.DefaultEstimators),
		DaysAhead:    7,
		Availability: 0.8,
		SubmitDelay:  800 * time.Millisecond,
		Seed:         0,
	}
}

// envKeys lists every key bound to a SMARTRENO_ variable.
var envKeys = []string{
	"log_level",
	"log_file",
	"service_areas",
	"estimators",
	"days_ahead",
	"availability",
	"submit_delay",
	"seed",
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
//
// CLI flags are applied by the commands on top of the returned Config.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("smartreno")

	d := Defaults()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("service_areas", d.ServiceAreas)
	v.SetDefault("estimators", d.Estimators)
	v.SetDefault("days_ahead", d.DaysAhead)
	v.SetDefault("availability", d.Availability)
	v.SetDefault("submit_delay", d.SubmitDelay)
	v.SetDefault("seed", d.Seed)

	// Setup ENV binding with SMARTRENO_ prefix
	v.SetEnvPrefix("SMARTRENO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		if err := v.BindEnv(key, "SMARTRENO_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the booking flow cannot work with.
func (c *Config) Validate() error {
	if len(c.ServiceAreas) == 0 {
		return fmt.Errorf("invalid config: service_areas must list at least one ZIP code")
	}
	for _, zip := range c.ServiceAreas {
		if len(zip) != 5 || booking.NormalizeZIP(zip) != zip {
			return fmt.Errorf("invalid config: service_areas entry %q is not a 5-digit ZIP code", zip)
		}
	}
	if len(c.Estimators) == 0 {
		return fmt.Errorf("invalid config: estimators must list at least one name")
	}
	if c.DaysAhead < 1 || c.DaysAhead > 60 {
		return fmt.Errorf("invalid config: days_ahead must be between 1 and 60, got %d", c.DaysAhead)
	}
	if c.Availability <= 0 || c.Availability > 1 {
		return fmt.Errorf("invalid config: availability must be in (0, 1], got %g", c.Availability)
	}
	if c.SubmitDelay < 0 {
		return fmt.Errorf("invalid config: submit_delay must not be negative")
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/smartreno/smartreno.yml or $XDG_CONFIG_HOME/smartreno/smartreno.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "smartreno", "smartreno.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "smartreno", "smartreno.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "smartreno.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
