package models

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Provider names accepted in Config.Provider.
const (
	ProviderRapidAPI   = "rapidapi"
	ProviderExtractive = "extractive"
	ProviderOpenAI     = "openai"
)

// Extractive strategies accepted in ExtractiveConfig.Strategy.
const (
	StrategyLead      = "lead"
	StrategyFrequency = "frequency"
)

// Store drivers accepted in StoreConfig.Driver.
const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
	StoreMemory = "memory"
)

const (
	DefaultConfigPath    = "sumz.yaml"
	DefaultRapidAPIHost  = "article-extractor-and-summarizer.p.rapidapi.com"
	DefaultSummaryLength = 3
	DefaultOpenAIModel   = "gpt-4o-mini"
)

// Config holds runtime configuration. Values come from an optional YAML file,
// then environment variables, then CLI flags.
type Config struct {
	Provider       string           `yaml:"provider"`
	RequestTimeout time.Duration    `yaml:"request_timeout"`
	RapidAPI       RapidAPIConfig   `yaml:"rapidapi"`
	Extractive     ExtractiveConfig `yaml:"extractive"`
	OpenAI         OpenAIConfig     `yaml:"openai"`
	Store          StoreConfig      `yaml:"store"`
	Log            LogConfig        `yaml:"log"`
}

type RapidAPIConfig struct {
	Key     string `yaml:"key"`
	Host    string `yaml:"host"`
	BaseURL string `yaml:"base_url"`
	Length  int    `yaml:"length"`
}

// ExtractiveConfig tunes the local summarizer. Strategy "lead" keeps the
// opening sentences; "frequency" keeps the sentences richest in the
// article's most frequent words.
type ExtractiveConfig struct {
	Sentences int    `yaml:"sentences"`
	Strategy  string `yaml:"strategy"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// StoreConfig selects the key-value backend for the article history.
// An empty Path means the backend's default location.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// LogConfig controls slog output. When File is set, logs rotate through lumberjack.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// LoadConfig reads the YAML file at path, applies defaults and environment
// overrides, and validates the result. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// defaults and environment only
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg.ApplyDefaults()
	cfg.applyEnvironmentOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderRapidAPI
	}
	if c.RapidAPI.Host == "" {
		c.RapidAPI.Host = DefaultRapidAPIHost
	}
	if c.RapidAPI.BaseURL == "" {
		c.RapidAPI.BaseURL = "https://" + c.RapidAPI.Host
	}
	if c.RapidAPI.Length == 0 {
		c.RapidAPI.Length = DefaultSummaryLength
	}
	if c.Extractive.Sentences == 0 {
		c.Extractive.Sentences = DefaultSummaryLength
	}
	if c.Extractive.Strategy == "" {
		c.Extractive.Strategy = StrategyLead
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = DefaultOpenAIModel
	}
	if c.Store.Driver == "" {
		c.Store.Driver = StoreSQLite
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 28
	}
}

func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv("SUMZ_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("SUMZ_RAPIDAPI_KEY"); v != "" {
		c.RapidAPI.Key = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("SUMZ_DB"); v != "" {
		c.Store.Path = v
	}
}

// Validate checks enumerated fields. Missing API keys are reported when the
// summarizer is built, so that history-only commands work without one.
func (c *Config) Validate() error {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	switch c.Provider {
	case ProviderRapidAPI, ProviderExtractive, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown provider %q (want %s, %s or %s)", c.Provider, ProviderRapidAPI, ProviderExtractive, ProviderOpenAI)
	}

	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case StoreSQLite, StoreFile, StoreMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	if c.RapidAPI.Length < 1 {
		return fmt.Errorf("rapidapi.length must be at least 1, got %d", c.RapidAPI.Length)
	}
	c.Extractive.Strategy = strings.ToLower(strings.TrimSpace(c.Extractive.Strategy))
	switch c.Extractive.Strategy {
	case StrategyLead, StrategyFrequency:
	default:
		return fmt.Errorf("unknown extractive strategy %q (want %s or %s)", c.Extractive.Strategy, StrategyLead, StrategyFrequency)
	}
	if c.Extractive.Sentences < 1 {
		return fmt.Errorf("extractive.sentences must be at least 1, got %d", c.Extractive.Sentences)
	}
	return nil
}
