package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvHome, "/custom/home")
	t.Setenv(EnvNetwork, "Testnet")
	t.Setenv(EnvIndexerURL, "  https://indexer.example.com  ")
	t.Setenv(EnvIndexerAPIKey, "sekrit")
	t.Setenv(EnvLookAhead, "35")
	t.Setenv(EnvOutputFormat, "JSON")
	t.Setenv(EnvVerbose, "true")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg := Defaults()
	ApplyEnvironment(cfg)

	assert.Equal(t, "/custom/home", cfg.Home)
	assert.Equal(t, "testnet", cfg.Network.ID)
	assert.Equal(t, "https://indexer.example.com", cfg.Network.Indexer.URL)
	assert.Equal(t, "sekrit", cfg.Network.Indexer.APIKey)
	assert.Equal(t, 35, cfg.Discovery.LookAhead)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.True(t, cfg.Output.Verbose)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestApplyEnvironmentNoOverrides(t *testing.T) {
	t.Setenv(EnvHome, "")
	t.Setenv(EnvLookAhead, "")

	cfg := Defaults()
	before := *cfg
	ApplyEnvironment(cfg)

	assert.Equal(t, before.Home, cfg.Home)
	assert.Equal(t, before.Discovery.LookAhead, cfg.Discovery.LookAhead)
}

func TestApplyEnvironmentIgnoresInvalidLookAhead(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not a number", value: "many"},
		{name: "negative", value: "-3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(EnvLookAhead, tc.value)

			cfg := Defaults()
			ApplyEnvironment(cfg)
			assert.Equal(t, DefaultLookAhead, cfg.Discovery.LookAhead)
		})
	}
}

func TestApplyEnvironmentNoColor(t *testing.T) {
	t.Setenv(EnvNoColor, "1")

	cfg := Defaults()
	ApplyEnvironment(cfg)
	assert.Equal(t, "never", cfg.Output.Color)
}

func TestSanitizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "clean URL",
			input:    "https://indexer.example.com/v1",
			expected: "https://indexer.example.com/v1",
		},
		{
			name:     "with leading/trailing spaces",
			input:    "  https://indexer.example.com/v1  ",
			expected: "https://indexer.example.com/v1",
		},
		{
			name:     "localhost",
			input:    "http://localhost:3100",
			expected: "http://localhost:3100",
		},
		{
			name:     "127.0.0.1",
			input:    "http://127.0.0.1:3100",
			expected: "http://127.0.0.1:3100",
		},
		{
			name:     "trailing newline",
			input:    "https://indexer.example.com\n",
			expected: "https://indexer.example.com",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := SanitizeURL(tc.input)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestParseBool(t *testing.T) {
	t.Parallel()

	trueValues := []string{"1", "true", "TRUE", "yes", "on", " Yes "}
	for _, v := range trueValues {
		assert.True(t, parseBool(v), "value %q", v)
	}

	falseValues := []string{"", "0", "false", "no", "off", "maybe"}
	for _, v := range falseValues {
		assert.False(t, parseBool(v), "value %q", v)
	}
}
