package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "dcrhub.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	return configPath
}

const validConfigYAML = `
sources:
  results_url: "https://example.com/data/results.json"
  cards_url: "cards.json"
page:
  url: "https://example.com/hub/index.html"
fetch:
  user_agent: "test-agent"
  timeout_sec: 10
  buffer_size_kb: 512
filter:
  debounce_ms: 100
logging:
  level: "debug"
  format: "json"
server:
  addr: ":9090"
  dir: "./site"
  allowed_origins: ["https://example.com"]
`

func TestLoadConfig_Valid(t *testing.T) {
	cfg, err := Load(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/data/results.json", cfg.Sources.ResultsURL)
	assert.Equal(t, "test-agent", cfg.Fetch.UserAgent)
	assert.Equal(t, 10*time.Second, cfg.Fetch.GetTimeout())
	assert.Equal(t, 100*time.Millisecond, cfg.Filter.GetDebounce())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"https://example.com"}, cfg.Server.AllowedOrigins)
}

func TestLoadConfig_DefaultsFillGaps(t *testing.T) {
	cfg, err := Load(createTempConfigFile(t, "logging:\n  level: warn\n"))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "results.json", cfg.Sources.ResultsURL)
	assert.Equal(t, 250, cfg.Filter.DebounceMs)
	assert.Equal(t, 4096, cfg.Fetch.BufferSizeKb)
	assert.Equal(t, time.Duration(0), cfg.Fetch.GetTimeout())
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("DCRHUB_SOURCES_RESULTS_URL", "https://env.example.com/results.json")
	t.Setenv("DCRHUB_FILTER_DEBOUNCE_MS", "50")

	cfg, err := Load(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com/results.json", cfg.Sources.ResultsURL)
	assert.Equal(t, 50, cfg.Filter.DebounceMs)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Page.URL, cfg.Page.URL)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := Load(createTempConfigFile(t, "filter:\n  debounce_ms: -1\n"))
	assert.ErrorIs(t, err, ErrInvalidDebounce)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"missing results url", func(c *Config) { c.Sources.ResultsURL = " " }, ErrMissingResultsURL},
		{"relative page url", func(c *Config) { c.Page.URL = "index.html" }, ErrInvalidPageURL},
		{"ftp page url", func(c *Config) { c.Page.URL = "ftp://example.com/" }, ErrInvalidPageURL},
		{"negative timeout", func(c *Config) { c.Fetch.TimeoutSec = -1 }, ErrInvalidTimeout},
		{"zero buffer", func(c *Config) { c.Fetch.BufferSizeKb = 0 }, ErrInvalidBufferSize},
		{"negative debounce", func(c *Config) { c.Filter.DebounceMs = -5 }, ErrInvalidDebounce},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, ErrInvalidLogLevel},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, ErrInvalidLogFormat},
		{"missing addr", func(c *Config) { c.Server.Addr = "" }, ErrMissingServerAddr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSourceURL(t *testing.T) {
	cfg := Default()
	cfg.Page.URL = "https://example.com/hub/index.html?date=2024-01-01"

	results, err := cfg.SourceURL(SourceResults)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/hub/results.json", results)

	cfg.Sources.CardsURL = "https://cdn.example.com/cards.json"
	cards, err := cfg.SourceURL(SourceCards)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/cards.json", cards)

	_, err = cfg.SourceURL("odds")
	assert.ErrorIs(t, err, ErrUnknownSourceKind)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")

	cfg := Default()
	cfg.Sources.ResultsURL = "https://example.com/results.json"
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Sources, loaded.Sources)
	assert.Equal(t, cfg.Server, loaded.Server)
}

func TestConfig_String(t *testing.T) {
	assert.Contains(t, Default().String(), "Debounce: 250ms")
}
