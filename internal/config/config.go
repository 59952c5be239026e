// Package config provides configuration management for the report tooling.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"mediareport/internal/models"
	"mediareport/internal/pagination"
)

// Configuration validation errors.
var (
	ErrInvalidBaseURL           = errors.New("backend.base_url must be an absolute http(s) URL")
	ErrInvalidMaxAttempts       = errors.New("backend.retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("backend.retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("backend.retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("backend.retry.timeout_sec must be at least 1")
	ErrNoMediaTypes             = errors.New("report.media_types must list at least one media type")
	ErrEmptyMediaType           = errors.New("report.media_types entries must be non-empty")
	ErrDuplicateMediaType       = errors.New("report.media_types entries must be unique")
	ErrInvalidOutputFormat      = errors.New("output.format must be one of: markdown, json, yaml")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat         = errors.New("logging.format must be 'text' or 'json'")
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Config represents the complete report tooling configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Report  ReportConfig  `yaml:"report"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// BackendConfig describes the REST backend that serves report records.
type BackendConfig struct {
	BaseURL string      `yaml:"base_url"`
	APIKey  string      `yaml:"api_key"`
	Email   string      `yaml:"email"`
	Retry   RetryPolicy `yaml:"retry"`
}

// RetryPolicy defines retry behavior.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// ReportConfig controls how reports are paginated and labelled.
type ReportConfig struct {
	MediaTypes      []string          `yaml:"media_types"`
	LabelsFile      string            `yaml:"labels_file"`
	ModuleLabels    map[string]string `yaml:"module_labels,omitempty"`
	MediaTypeLabels map[string]string `yaml:"media_type_labels,omitempty"`
}

// OutputConfig defines output behavior.
type OutputConfig struct {
	Format string `yaml:"format"`
	Sign   bool   `yaml:"sign"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a configuration usable without a config file.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    500,
				MaxDelayMs:        10000,
				BackoffMultiplier: 2.0,
				TimeoutSec:        30,
			},
		},
		Report: ReportConfig{
			MediaTypes: append([]string(nil), models.MediaTypes...),
		},
		Output: OutputConfig{
			Format: FormatMarkdown,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from YAML file over the defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Backend.BaseURL != "" {
		u, err := url.Parse(c.Backend.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.Backend.BaseURL)
		}
	}

	// Validate retry policy
	if c.Backend.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Backend.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Backend.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Backend.Retry.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	// Validate report layout
	if len(c.Report.MediaTypes) == 0 {
		return ErrNoMediaTypes
	}

	seen := make(map[string]bool, len(c.Report.MediaTypes))

	for i, mt := range c.Report.MediaTypes {
		if mt == "" {
			return fmt.Errorf("%w: media_types[%d]", ErrEmptyMediaType, i)
		}

		if seen[mt] {
			return fmt.Errorf("%w: %s", ErrDuplicateMediaType, mt)
		}

		seen[mt] = true
	}

	validFormats := map[string]bool{FormatMarkdown: true, FormatJSON: true, FormatYAML: true}
	if !validFormats[c.Output.Format] {
		return ErrInvalidOutputFormat
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// Labels resolves the label tables: defaults, then the labels file, then inline overrides.
func (c *Config) Labels() (pagination.Labels, error) {
	labels := pagination.DefaultLabels()

	if c.Report.LabelsFile != "" {
		loaded, err := pagination.LoadLabels(c.Report.LabelsFile)
		if err != nil {
			return pagination.Labels{}, err
		}

		labels = loaded
	}

	return labels.Merge(pagination.Labels{
		Modules:    c.Report.ModuleLabels,
		MediaTypes: c.Report.MediaTypeLabels,
	}), nil
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Backend: %s, MaxAttempts: %d, MediaTypes: %v, Output: %s}",
		c.Backend.BaseURL,
		c.Backend.Retry.MaxAttempts,
		c.Report.MediaTypes,
		c.Output.Format,
	)
}
