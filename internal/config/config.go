// Package config loads Lectern configuration from a YAML file, environment
// variables, and defaults, with optional hot-reloading.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/pulpitworks/lectern/internal/analysis"
	"github.com/pulpitworks/lectern/internal/commentary"
	"github.com/pulpitworks/lectern/internal/providers"
)

// Config is the full application configuration.
type Config struct {
	ESV        ESVSettings        `mapstructure:"esv" yaml:"esv"`
	NET        NETSettings        `mapstructure:"net" yaml:"net"`
	Analysis   AnalysisSettings   `mapstructure:"analysis" yaml:"analysis"`
	Commentary CommentarySettings `mapstructure:"commentary" yaml:"commentary"`
	Resolve    ResolveSettings    `mapstructure:"resolve" yaml:"resolve"`
}

// ESVSettings configures the primary (credentialed) passage provider.
type ESVSettings struct {
	APIKey         string  `mapstructure:"api_key" yaml:"api_key"`
	BaseURL        string  `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	RateLimit      float64 `mapstructure:"rate_limit" yaml:"rate_limit"`
}

// NETSettings configures the secondary (credential-free) passage provider.
type NETSettings struct {
	BaseURL        string  `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	RateLimit      float64 `mapstructure:"rate_limit" yaml:"rate_limit"`
}

// AnalysisSettings configures the optional LLM formatting pass.
type AnalysisSettings struct {
	APIKey         string `mapstructure:"api_key" yaml:"api_key"`
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
	Model          string `mapstructure:"model" yaml:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
}

// CommentarySettings configures commentary appendix lookups.
type CommentarySettings struct {
	BaseURL        string   `mapstructure:"base_url" yaml:"base_url"`
	DBPath         string   `mapstructure:"db_path" yaml:"db_path"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Sources        []string `mapstructure:"sources" yaml:"sources"`
}

// ResolveSettings configures the resolution pass.
type ResolveSettings struct {
	MaxConcurrentFetches int    `mapstructure:"max_concurrent_fetches" yaml:"max_concurrent_fetches"`
	MainFile             string `mapstructure:"main_file" yaml:"main_file"`
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and the config file.
func (cm *Manager) initViper(cfgFile string) error {
	// Leaf-key defaults so a partial config file section does not shadow
	// its siblings.
	for _, entry := range DefaultEntries() {
		viper.SetDefault(entry.Key, entry.Value)
	}

	// Environment variables with LECTERN_ prefix
	viper.SetEnvPrefix("LECTERN")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.lectern")
	}

	// Config file is optional; defaults plus env cover the common case.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
func (cm *Manager) WatchConfig() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	viper.WatchConfig()
}

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	pattern := regexp.MustCompile(`\$\{([^}]+)\}`)
	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}

// ESVProviderConfig converts the ESV settings for the provider adapter,
// resolving ${ENV_VAR} references in the API key.
func (c *Config) ESVProviderConfig(logger *slog.Logger) providers.ESVConfig {
	return providers.ESVConfig{
		APIKey:    ResolveEnvVars(c.ESV.APIKey),
		BaseURL:   c.ESV.BaseURL,
		Timeout:   time.Duration(c.ESV.TimeoutSeconds) * time.Second,
		RateLimit: c.ESV.RateLimit,
		Logger:    logger,
	}
}

// NETProviderConfig converts the NET settings for the provider adapter.
func (c *Config) NETProviderConfig(logger *slog.Logger) providers.NETConfig {
	return providers.NETConfig{
		BaseURL:   c.NET.BaseURL,
		Timeout:   time.Duration(c.NET.TimeoutSeconds) * time.Second,
		RateLimit: c.NET.RateLimit,
		Logger:    logger,
	}
}

// AnalyzerConfig converts the analysis settings. The analyzer disables
// itself when no key resolves or the pass is switched off.
func (c *Config) AnalyzerConfig(logger *slog.Logger) analysis.Config {
	apiKey := ""
	if c.Analysis.Enabled {
		apiKey = ResolveEnvVars(c.Analysis.APIKey)
	}
	return analysis.Config{
		APIKey:  apiKey,
		BaseURL: c.Analysis.BaseURL,
		Model:   c.Analysis.Model,
		Timeout: time.Duration(c.Analysis.TimeoutSeconds) * time.Second,
		Logger:  logger,
	}
}

// CommentaryClientConfig converts the commentary settings for the REST
// client backend.
func (c *Config) CommentaryClientConfig(logger *slog.Logger) commentary.ClientConfig {
	return commentary.ClientConfig{
		BaseURL: c.Commentary.BaseURL,
		Timeout: time.Duration(c.Commentary.TimeoutSeconds) * time.Second,
		Logger:  logger,
	}
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Lectern configuration
# API keys use ${ENV_VAR} syntax to reference environment variables
# Set these in your shell: export ESV_API_KEY=xxx OPENAI_API_KEY=xxx

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
