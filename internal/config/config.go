// Package config provides configuration management for the viewer.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"dcrhub/pkg/utils"
)

// EnvPrefix is the prefix of environment overrides, e.g. DCRHUB_SOURCES_RESULTS_URL.
const EnvPrefix = "DCRHUB"

// Configuration validation errors.
var (
	ErrMissingResultsURL = errors.New("sources.results_url is required")
	ErrInvalidPageURL    = errors.New("page.url must be an absolute http(s) URL")
	ErrInvalidTimeout    = errors.New("fetch.timeout_sec must be non-negative")
	ErrInvalidBufferSize = errors.New("fetch.buffer_size_kb must be at least 1")
	ErrInvalidDebounce   = errors.New("filter.debounce_ms must be non-negative")
	ErrInvalidLogLevel   = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat  = errors.New("logging.format must be 'console' or 'json'")
	ErrMissingServerAddr = errors.New("server.addr is required")
	ErrUnknownSourceKind = errors.New("unknown source kind")
)

// Config represents the complete viewer configuration.
type Config struct {
	Sources SourcesConfig `yaml:"sources" mapstructure:"sources"`
	Page    PageConfig    `yaml:"page" mapstructure:"page"`
	Fetch   FetchConfig   `yaml:"fetch" mapstructure:"fetch"`
	Filter  FilterConfig  `yaml:"filter" mapstructure:"filter"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
}

// SourcesConfig locates the JSON documents. Relative URLs resolve against page.url.
type SourcesConfig struct {
	ResultsURL string `yaml:"results_url" mapstructure:"results_url"`
	CardsURL   string `yaml:"cards_url" mapstructure:"cards_url"`
}

// PageConfig describes the shareable page address.
type PageConfig struct {
	URL string `yaml:"url" mapstructure:"url"`
}

// FetchConfig defines fetch behavior. A zero timeout leaves it to the transport.
type FetchConfig struct {
	UserAgent    string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSec   int    `yaml:"timeout_sec" mapstructure:"timeout_sec"`
	BufferSizeKb int    `yaml:"buffer_size_kb" mapstructure:"buffer_size_kb"`
}

// FilterConfig defines filter input behavior.
type FilterConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ServerConfig configures the local data host.
type ServerConfig struct {
	Addr           string   `yaml:"addr" mapstructure:"addr"`
	Dir            string   `yaml:"dir" mapstructure:"dir"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// SourceKind selects one of the configured documents.
type SourceKind string

// Document kinds.
const (
	SourceResults SourceKind = "results"
	SourceCards   SourceKind = "cards"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Sources: SourcesConfig{
			ResultsURL: "results.json",
			CardsURL:   "cards.json",
		},
		Page: PageConfig{
			URL: "http://localhost:8080/",
		},
		Fetch: FetchConfig{
			UserAgent:    "DCRHub-Viewer/1.0",
			TimeoutSec:   0,
			BufferSizeKb: 4096,
		},
		Filter: FilterConfig{
			DebounceMs: 250,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			Dir:            ".",
			AllowedOrigins: []string{"*"},
		},
	}
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("sources.results_url", d.Sources.ResultsURL)
	v.SetDefault("sources.cards_url", d.Sources.CardsURL)
	v.SetDefault("page.url", d.Page.URL)
	v.SetDefault("fetch.user_agent", d.Fetch.UserAgent)
	v.SetDefault("fetch.timeout_sec", d.Fetch.TimeoutSec)
	v.SetDefault("fetch.buffer_size_kb", d.Fetch.BufferSizeKb)
	v.SetDefault("filter.debounce_ms", d.Filter.DebounceMs)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.dir", d.Server.Dir)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
}

// Load reads configuration from an optional YAML file and DCRHUB_*
// environment variables. With an empty path, ./dcrhub.yaml is used when it
// exists.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("dcrhub")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, Default())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to a YAML file.
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
	if strings.TrimSpace(c.Sources.ResultsURL) == "" {
		return ErrMissingResultsURL
	}

	if !utils.NewHTTPHelper("").IsValidURL(c.Page.URL) {
		return fmt.Errorf("%w: %q", ErrInvalidPageURL, c.Page.URL)
	}

	if c.Fetch.TimeoutSec < 0 {
		return ErrInvalidTimeout
	}

	if c.Fetch.BufferSizeKb < 1 {
		return ErrInvalidBufferSize
	}

	if c.Filter.DebounceMs < 0 {
		return ErrInvalidDebounce
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	if c.Server.Addr == "" {
		return ErrMissingServerAddr
	}

	return nil
}

// SourceURL resolves a configured document URL against page.url.
func (c *Config) SourceURL(kind SourceKind) (string, error) {
	var ref string

	switch kind {
	case SourceResults:
		ref = c.Sources.ResultsURL
	case SourceCards:
		ref = c.Sources.CardsURL
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownSourceKind, kind)
	}

	return ResolveURL(c.Page.URL, ref)
}

// ResolveURL resolves ref against base. Absolute refs are returned unchanged.
func ResolveURL(base, ref string) (string, error) {
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", eris.Wrapf(err, "config: parse url %q", ref)
	}

	if r.IsAbs() {
		return r.String(), nil
	}

	b, err := url.Parse(base)
	if err != nil {
		return "", eris.Wrapf(err, "config: parse base url %q", base)
	}

	return b.ResolveReference(r).String(), nil
}

// GetTimeout returns the fetch timeout; zero means none.
func (f *FetchConfig) GetTimeout() time.Duration {
	return time.Duration(f.TimeoutSec) * time.Second
}

// GetDebounce returns the filter debounce delay.
func (f *FilterConfig) GetDebounce() time.Duration {
	return time.Duration(f.DebounceMs) * time.Millisecond
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Results: %s, Cards: %s, Page: %s, Debounce: %dms}",
		c.Sources.ResultsURL,
		c.Sources.CardsURL,
		c.Page.URL,
		c.Filter.DebounceMs,
	)
}
