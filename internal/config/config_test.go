package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "~/.adascout", cfg.Home)
	assert.Equal(t, "mainnet", cfg.Network.ID)
	assert.Equal(t, DefaultIndexerURL, cfg.Network.Indexer.URL)
	assert.Empty(t, cfg.Network.Indexer.APIKey)
	assert.InEpsilon(t, DefaultIndexerRateLimit, cfg.Network.Indexer.RateLimit, 0.0001)
	assert.Equal(t, DefaultIndexerBurst, cfg.Network.Indexer.Burst)
	assert.Equal(t, DefaultLookAhead, cfg.Discovery.LookAhead)
	assert.True(t, cfg.Discovery.Retry)
	assert.Equal(t, "auto", cfg.Output.DefaultFormat)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	path := Path(home)

	cfg := Defaults()
	cfg.Home = home
	cfg.Network.ID = "testnet"
	cfg.Network.Indexer.URL = "https://indexer.example.com"
	cfg.Discovery.LookAhead = 42

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "testnet", loaded.Network.ID)
	assert.Equal(t, "https://indexer.example.com", loaded.Network.Indexer.URL)
	assert.Equal(t, 42, loaded.Discovery.LookAhead)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.Error(t, err)
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("network:\n  id: testnet\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "testnet", cfg.Network.ID)
	// Unspecified settings keep their defaults
	assert.Equal(t, DefaultIndexerURL, cfg.Network.Indexer.URL)
	assert.Equal(t, DefaultLookAhead, cfg.Discovery.LookAhead)
}

func TestLoadInvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("/tmp/home", "config.yaml"), Path("/tmp/home"))
}

func TestIsMainnet(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	assert.True(t, cfg.IsMainnet())

	cfg.Network.ID = "testnet"
	assert.False(t, cfg.IsMainnet())
}

func TestGetHomeExpandsTilde(t *testing.T) {
	cfg := Defaults()
	cfg.Home = "~/.adascout"

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".adascout"), cfg.GetHome())

	cfg.Home = "/absolute/path"
	assert.Equal(t, "/absolute/path", cfg.GetHome())
}
