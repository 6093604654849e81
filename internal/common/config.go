package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Logging     LoggingConfig   `toml:"logging"`
	Delivery    DeliveryConfig  `toml:"delivery"`
	Analyzer    AnalyzerConfig  `toml:"analyzer"`
	Draft       DraftConfig     `toml:"draft"`
	Storage     StorageConfig   `toml:"storage"`
	Artifacts   ArtifactsConfig `toml:"artifacts"`
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`      // "json" or "text"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

// DeliveryConfig controls the sequential handshake loop against the
// visualization rendering endpoint.
type DeliveryConfig struct {
	Endpoint    string  `toml:"endpoint"`     // Default rendering endpoint URL
	Timeout     string  `toml:"timeout"`      // Per-request timeout, e.g. "10s"
	MaxAttempts int     `toml:"max_attempts"` // Total tries per payload (default: 3)
	BackoffBase string  `toml:"backoff_base"` // Linear backoff unit, e.g. "300ms"
	RateLimit   float64 `toml:"rate_limit"`   // Requests per second pacing (0 = unlimited)
}

// AnalyzerConfig selects and configures the content analysis provider.
// Provider "heuristic" forces the rule-based analyzer and makes no network calls.
type AnalyzerConfig struct {
	Provider    string  `toml:"provider"`    // "claude", "gemini", or "heuristic"
	Model       string  `toml:"model"`       // Provider model name
	APIKey      string  `toml:"api_key"`     // API key (env vars take precedence)
	Temperature float32 `toml:"temperature"` // Sampling temperature
	MaxTokens   int     `toml:"max_tokens"`  // Max response tokens
	Timeout     string  `toml:"timeout"`     // Per-call timeout, e.g. "2m"
	MaxVisuals  int     `toml:"max_visuals"` // Max visuals per estimated page (default: 2)
}

// DraftConfig configures the draft expansion service.
type DraftConfig struct {
	Model       string  `toml:"model"`       // Model for draft expansion (empty = analyzer model)
	Temperature float32 `toml:"temperature"` // Sampling temperature
	MaxTokens   int     `toml:"max_tokens"`  // Max response tokens
	TargetPages int     `toml:"target_pages"` // Target length of the expanded draft
	Timeout     string  `toml:"timeout"`      // Expansion timeout (duration string)
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents the run-archive database configuration
type BadgerConfig struct {
	Enabled        bool   `toml:"enabled"`          // Archive runs to Badger (default: off)
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// ArtifactsConfig controls where run artifacts are written by default.
type ArtifactsConfig struct {
	Dir string `toml:"dir"` // Output directory for review.html / compiled payloads
}

// NewDefaultConfig returns a Config populated with defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		Delivery: DeliveryConfig{
			Endpoint:    "http://localhost:3000/api/visualizations",
			Timeout:     "10s",
			MaxAttempts: 3,
			BackoffBase: "300ms",
			RateLimit:   0,
		},
		Analyzer: AnalyzerConfig{
			Provider:    "claude",
			Model:       "",
			Temperature: 0.2,
			MaxTokens:   8192,
			Timeout:     "2m",
			MaxVisuals:  2,
		},
		Draft: DraftConfig{
			Temperature: 0.5,
			MaxTokens:   8192,
			TargetPages: 5,
			Timeout:     "3m",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Enabled: false,
				Path:    "./data/scribeflow",
			},
		},
		Artifacts: ArtifactsConfig{
			Dir: "generated_artifacts",
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env. Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SCRIBEFLOW_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Logging
	if level := os.Getenv("SCRIBEFLOW_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("SCRIBEFLOW_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Delivery
	if endpoint := os.Getenv("SCRIBEFLOW_DELIVERY_ENDPOINT"); endpoint != "" {
		config.Delivery.Endpoint = endpoint
	}
	if timeout := os.Getenv("SCRIBEFLOW_DELIVERY_TIMEOUT"); timeout != "" {
		config.Delivery.Timeout = timeout
	}
	if attempts := os.Getenv("SCRIBEFLOW_DELIVERY_MAX_ATTEMPTS"); attempts != "" {
		if a, err := strconv.Atoi(attempts); err == nil {
			config.Delivery.MaxAttempts = a
		}
	}

	// Analyzer
	if provider := os.Getenv("SCRIBEFLOW_ANALYZER_PROVIDER"); provider != "" {
		config.Analyzer.Provider = provider
	}
	if model := os.Getenv("SCRIBEFLOW_ANALYZER_MODEL"); model != "" {
		config.Analyzer.Model = model
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" && config.Analyzer.APIKey == "" {
		config.Analyzer.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" && config.Analyzer.APIKey == "" {
		config.Analyzer.APIKey = key
	}
	if key := os.Getenv("SCRIBEFLOW_ANALYZER_API_KEY"); key != "" {
		config.Analyzer.APIKey = key
	}

	// Storage
	if path := os.Getenv("SCRIBEFLOW_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}
	if enabled := os.Getenv("SCRIBEFLOW_BADGER_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			config.Storage.Badger.Enabled = b
		}
	}

	// Artifacts
	if dir := os.Getenv("SCRIBEFLOW_ARTIFACTS_DIR"); dir != "" {
		config.Artifacts.Dir = dir
	}
}
