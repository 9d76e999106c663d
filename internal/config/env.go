package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/mrz1836/go-sanitize"
)

// Environment variable names.
const (
	EnvHome          = "ADASCOUT_HOME"
	EnvNetwork       = "ADASCOUT_NETWORK"
	EnvIndexerURL    = "ADASCOUT_INDEXER_URL"
	EnvIndexerAPIKey = "ADASCOUT_INDEXER_API_KEY" // #nosec G101 -- false positive, this is a const name not a credential
	EnvLookAhead     = "ADASCOUT_LOOK_AHEAD"
	EnvOutputFormat  = "ADASCOUT_OUTPUT_FORMAT"
	EnvVerbose       = "ADASCOUT_VERBOSE"
	EnvLogLevel      = "ADASCOUT_LOG_LEVEL"
	EnvNoColor       = "NO_COLOR"
)

// ApplyEnvironment applies environment variable overrides to the configuration.
//
//nolint:gocognit,gocyclo // Environment variable overrides require sequential checks
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvNetwork); v != "" {
		cfg.Network.ID = strings.ToLower(strings.TrimSpace(v))
	}

	if v := os.Getenv(EnvIndexerURL); v != "" {
		cfg.Network.Indexer.URL = SanitizeURL(v)
	}

	if v := os.Getenv(EnvIndexerAPIKey); v != "" {
		cfg.Network.Indexer.APIKey = v
	}

	// ADASCOUT_LOOK_AHEAD overrides the payment-chain gap limit
	if v := os.Getenv(EnvLookAhead); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Discovery.LookAhead = n
		}
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	// NO_COLOR disables colored output
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}
}

// SanitizeURL cleans a URL string by removing invalid characters and trimming
// whitespace. Indexer URLs pasted from dashboards often carry copy-paste
// artifacts.
func SanitizeURL(url string) string {
	return sanitize.URL(strings.TrimSpace(url))
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
