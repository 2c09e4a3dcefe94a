package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvExtractor, EnvMaxUnits, EnvFormat, EnvOutput, EnvLogLevel, EnvSourceDateEpoch} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	var testCases = []struct {
		description string
		content     string
		env         map[string]string
		expect      func(t *testing.T, cfg *Config)
		expectErr   bool
	}{
		{
			description: "file values over defaults",
			content: `extractor: treesitter
maxUnits: 0
format: yaml
logging:
  level: debug
`,
			expect: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "treesitter", cfg.Extractor)
				assert.Equal(t, 0, cfg.MaxUnits)
				assert.Equal(t, "yaml", cfg.Format)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
				assert.Equal(t, []string{".tsx", ".jsx", ".ts", ".js"}, cfg.Extensions)
			},
		},
		{
			description: "environment over file",
			content:     "maxUnits: 3\nformat: yaml\n",
			env: map[string]string{
				EnvMaxUnits:        "7",
				EnvFormat:          "json",
				EnvOutput:          "out/bundles",
				EnvLogLevel:        "error",
				EnvSourceDateEpoch: "1700000000",
			},
			expect: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7, cfg.MaxUnits)
				assert.Equal(t, "json", cfg.Format)
				assert.Equal(t, "out/bundles", cfg.Output)
				assert.Equal(t, "error", cfg.Logging.Level)
				assert.True(t, cfg.Reproducible)
				assert.Equal(t, int64(1700000000), cfg.SourceDateEpoch)
			},
		},
		{
			description: "invalid max units",
			content:     "extractor: heuristic\n",
			env:         map[string]string{EnvMaxUnits: "many"},
			expectErr:   true,
		},
		{
			description: "malformed yaml",
			content:     "maxUnits: [1\n",
			expectErr:   true,
		},
	}
	for _, testCase := range testCases {
		clearEnv(t)
		for key, value := range testCase.env {
			t.Setenv(key, value)
		}
		location := filepath.Join(t.TempDir(), "uicontract.yaml")
		require.NoError(t, os.WriteFile(location, []byte(testCase.content), 0o644))
		cfg, err := Load(context.Background(), location)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		testCase.expect(t, cfg)
	}
}

func TestLoad_Missing(t *testing.T) {
	clearEnv(t)
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestConfig_Validate(t *testing.T) {
	var testCases = []struct {
		description string
		mutate      func(cfg *Config)
		expectErr   bool
	}{
		{description: "defaults", mutate: func(cfg *Config) {}},
		{description: "tree-sitter", mutate: func(cfg *Config) { cfg.Extractor = "treesitter" }},
		{description: "unknown extractor", mutate: func(cfg *Config) { cfg.Extractor = "babel" }, expectErr: true},
		{description: "unknown format", mutate: func(cfg *Config) { cfg.Format = "toml" }, expectErr: true},
		{description: "negative max units", mutate: func(cfg *Config) { cfg.MaxUnits = -1 }, expectErr: true},
		{description: "negative cache", mutate: func(cfg *Config) { cfg.CacheSize = -2 }, expectErr: true},
	}
	for _, testCase := range testCases {
		cfg := Default()
		testCase.mutate(cfg)
		err := cfg.Validate()
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		assert.NoError(t, err, testCase.description)
	}
}

func TestConfig_Clock(t *testing.T) {
	cfg := Default()
	cfg.Reproducible = true
	cfg.SourceDateEpoch = 86400
	assert.Equal(t, time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC), cfg.Clock()())

	cfg.Reproducible = false
	assert.WithinDuration(t, time.Now(), cfg.Clock()(), time.Minute)
}
