// Package config loads deckpipe configuration from a YAML file with
// environment overrides for credentials.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	BaseURL        string `yaml:"base_url"`
	OutputDir      string `yaml:"output_dir"`
	CacheDir       string `yaml:"cache_dir"`
	TemplatePath   string `yaml:"template_path"`
	UserAgent      string `yaml:"user_agent"`
	FetchTimeout   int    `yaml:"fetch_timeout_secs"`
	MaxImages      int    `yaml:"max_images_per_product"`
	MaxImageBytes  int64  `yaml:"max_image_bytes"`
	RetentionMins  int    `yaml:"retention_mins"`
	SweepMins      int    `yaml:"sweep_mins"`
	TargetCount    int    `yaml:"target_count"`
	LLMModel       string `yaml:"llm_model"`
	LLMBaseURL     string `yaml:"llm_base_url"`
	LLMMaxTokens   int    `yaml:"llm_max_tokens"`
	LogLevel       string `yaml:"log_level"`

	// Secrets come from the environment only, never from the file.
	Env EnvOverrides `yaml:"-"`
}

// EnvOverrides holds values read from DECKPIPE_* environment variables.
type EnvOverrides struct {
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
}

// Load reads configuration from a YAML file, applies defaults, and merges
// environment overrides. A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to defaults
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	applyDefaults(cfg)

	if err := envconfig.Process("deckpipe", &cfg.Env); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://lazulite.ae/activations"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "generated"
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = "uploads"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = 30
	}
	if cfg.MaxImages == 0 {
		cfg.MaxImages = 10
	}
	if cfg.MaxImageBytes == 0 {
		cfg.MaxImageBytes = 10 * 1024 * 1024
	}
	if cfg.RetentionMins == 0 {
		cfg.RetentionMins = 120
	}
	if cfg.SweepMins == 0 {
		cfg.SweepMins = 10
	}
	if cfg.TargetCount == 0 {
		cfg.TargetCount = 2
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = "gpt-4o-mini"
	}
	if cfg.LLMMaxTokens == 0 {
		cfg.LLMMaxTokens = 200
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

func validate(cfg *Config) error {
	if cfg.FetchTimeout < 0 {
		return fmt.Errorf("fetch_timeout_secs must be positive, got %d", cfg.FetchTimeout)
	}
	if cfg.TargetCount < 1 {
		return fmt.Errorf("target_count must be at least 1, got %d", cfg.TargetCount)
	}
	if cfg.MaxImages < 0 {
		return fmt.Errorf("max_images_per_product must be positive, got %d", cfg.MaxImages)
	}
	if cfg.RetentionMins < 1 {
		return fmt.Errorf("retention_mins must be at least 1, got %d", cfg.RetentionMins)
	}
	return nil
}

// Timeout returns the page and image fetch timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}

// Retention returns the image cache retention window.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionMins) * time.Minute
}

// SweepInterval returns the cache eviction sweep interval.
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepMins) * time.Minute
}

// Path returns the config file path from the environment or the default.
func Path() string {
	if p := os.Getenv("DECKPIPE_CONFIG"); p != "" {
		return p
	}
	return "./deckpipe.yaml"
}
