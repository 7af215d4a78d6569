package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, "data/catalog.csv", cfg.Catalog.Path)
	require.Equal(t, 3, cfg.Ranking.TopFood)
	require.Equal(t, 3, cfg.Ranking.TopTreats)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(`
http:
  address: ":9090"
catalog:
  path: fixtures/items.json
  dbPath: fixtures/items.db
ranking:
  topFood: 5
log:
  level: debug
  format: json
`), 0o644)
	require.NoError(t, err)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, "fixtures/items.json", cfg.Catalog.Path)
	require.Equal(t, "fixtures/items.db", cfg.Catalog.DBPath)
	require.Equal(t, 5, cfg.Ranking.TopFood)
	// Unset keys keep their defaults.
	require.Equal(t, 3, cfg.Ranking.TopTreats)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte("http:\n  address: \":9090\"\n"), 0o644)
	require.NoError(t, err)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("HTTP_ADDRESS", ":7070")
	t.Setenv("TOP_FOOD", "8")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.HTTP.Address)
	require.Equal(t, 8, cfg.Ranking.TopFood)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := defaultConfig()
	cfg.HTTP.Address = ""
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Catalog.Path = ""
	cfg.Catalog.DBPath = ""
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Ranking.TopFood = 0
	require.Error(t, cfg.Validate())
}

func TestLoadMissingFileFails(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	require.Error(t, err)
}
