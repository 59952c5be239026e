package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// validConfigYAML is a minimal valid configuration.
const validConfigYAML = `
backend:
  base_url: "https://api.example.com/v1"
  api_key: "secret"
  retry:
    max_attempts: 4
    initial_delay_ms: 100
    max_delay_ms: 5000
    backoff_multiplier: 2.0
    timeout_sec: 15
report:
  media_types: ["posts", "articles"]
  module_labels:
    sentiment: "Tone of Coverage"
output:
  format: "json"
  sign: true
logging:
  level: "debug"
  format: "json"
`

func TestLoadConfig_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if diff := cmp.Diff([]string{"posts", "articles"}, cfg.Report.MediaTypes); diff != "" {
		t.Errorf("MediaTypes mismatch (-want +got):\n%s", diff)
	}

	if cfg.Backend.Retry.MaxAttempts != 4 {
		t.Errorf("Expected MaxAttempts 4, got %d", cfg.Backend.Retry.MaxAttempts)
	}

	if !cfg.Output.Sign || cfg.Output.Format != FormatJSON {
		t.Errorf("Output = %+v, want json with signing", cfg.Output)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	configPath := createTempConfigFile(t, "logging:\n  level: warn\n")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}

	if len(cfg.Report.MediaTypes) != 4 {
		t.Errorf("MediaTypes = %v, want the four defaults", cfg.Report.MediaTypes)
	}

	if cfg.Output.Format != FormatMarkdown {
		t.Errorf("Output.Format = %q, want markdown", cfg.Output.Format)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "invalid: yaml: content: [}")

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	configPath := createTempConfigFile(t, "output:\n  format: pdf\n")

	_, err := LoadConfig(configPath)
	if !errors.Is(err, ErrInvalidOutputFormat) {
		t.Fatalf("LoadConfig() error = %v, want %v", err, ErrInvalidOutputFormat)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"relative base url", func(c *Config) { c.Backend.BaseURL = "api/v1" }, ErrInvalidBaseURL},
		{"ftp base url", func(c *Config) { c.Backend.BaseURL = "ftp://host/reports" }, ErrInvalidBaseURL},
		{"https base url", func(c *Config) { c.Backend.BaseURL = "https://host/api" }, nil},
		{"zero attempts", func(c *Config) { c.Backend.Retry.MaxAttempts = 0 }, ErrInvalidMaxAttempts},
		{"negative delay", func(c *Config) { c.Backend.Retry.InitialDelayMs = -1 }, ErrInvalidInitialDelay},
		{"shrinking backoff", func(c *Config) { c.Backend.Retry.BackoffMultiplier = 0.5 }, ErrInvalidBackoffMultiplier},
		{"zero timeout", func(c *Config) { c.Backend.Retry.TimeoutSec = 0 }, ErrInvalidTimeout},
		{"no media types", func(c *Config) { c.Report.MediaTypes = nil }, ErrNoMediaTypes},
		{"empty media type", func(c *Config) { c.Report.MediaTypes = []string{"articles", ""} }, ErrEmptyMediaType},
		{"duplicate media type", func(c *Config) { c.Report.MediaTypes = []string{"posts", "posts"} }, ErrDuplicateMediaType},
		{"output format", func(c *Config) { c.Output.Format = "xml" }, ErrInvalidOutputFormat},
		{"log level", func(c *Config) { c.Logging.Level = "verbose" }, ErrInvalidLogLevel},
		{"log format", func(c *Config) { c.Logging.Format = "logfmt" }, ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}

				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Labels(t *testing.T) {
	labelsPath := filepath.Join(t.TempDir(), "labels.yaml")
	if err := os.WriteFile(labelsPath, []byte("modules:\n  sentiment: From File\n  topSources: Outlets\n"), 0644); err != nil {
		t.Fatalf("Failed to write labels file: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Report.LabelsFile = labelsPath
	cfg.Report.ModuleLabels = map[string]string{"sentiment": "Inline"}

	labels, err := cfg.Labels()
	if err != nil {
		t.Fatalf("Labels failed: %v", err)
	}

	if got := labels.Module("sentiment"); got != "Inline" {
		t.Errorf("Module(sentiment) = %q, want Inline", got)
	}

	if got := labels.Module("topSources"); got != "Outlets" {
		t.Errorf("Module(topSources) = %q, want Outlets", got)
	}

	cfg.Report.LabelsFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := cfg.Labels(); err == nil {
		t.Error("Labels() with missing file expected error")
	}
}

// --- RetryPolicy Tests ---

func TestRetryPolicy_GetRetryDelay(t *testing.T) {
	rp := RetryPolicy{
		InitialDelayMs:    100,
		MaxDelayMs:        1000,
		BackoffMultiplier: 2.0,
	}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 0},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, 1000 * time.Millisecond},
		{10, 1000 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := rp.GetRetryDelay(tt.attempt); got != tt.expected {
			t.Errorf("GetRetryDelay(%d) = %v, want %v", tt.attempt, got, tt.expected)
		}
	}
}

func TestRetryPolicy_GetTimeout(t *testing.T) {
	rp := RetryPolicy{TimeoutSec: 30}

	if got := rp.GetTimeout(); got != 30*time.Second {
		t.Errorf("GetTimeout() = %v, want %v", got, 30*time.Second)
	}
}

func TestConfig_SaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend.BaseURL = "https://api.example.com"
	cfg.Report.MediaTypes = []string{"broadcast"}

	savePath := filepath.Join(t.TempDir(), "saved_config.yaml")

	if err := cfg.SaveConfig(savePath); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(savePath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("Loaded config mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestConfig_String(t *testing.T) {
	if str := DefaultConfig().String(); str == "" {
		t.Error("Expected non-empty string representation")
	}
}
