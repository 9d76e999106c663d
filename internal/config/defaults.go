package config

// DefaultIndexerURL is the default transaction indexer endpoint.
const DefaultIndexerURL = "https://indexer.nocturne.dev"

// Default indexer rate-limit settings. Discovery probes dozens of
// addresses per run, so the defaults allow some burst headroom.
const (
	DefaultIndexerRateLimit = 10.0
	DefaultIndexerBurst     = 20
)

// DefaultLookAhead is the default payment-chain gap limit.
const DefaultLookAhead = 20

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.adascout",
		Network: NetworkConfig{
			ID: "mainnet",
			Indexer: IndexerConfig{
				URL:       DefaultIndexerURL,
				APIKey:    "",
				RateLimit: DefaultIndexerRateLimit,
				Burst:     DefaultIndexerBurst,
			},
		},
		Discovery: DiscoveryConfig{
			LookAhead:      DefaultLookAhead,
			DefaultAccount: 0,
			Retry:          true,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.adascout/adascout.log",
		},
	}
}
