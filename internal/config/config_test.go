package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thurmanmarka/daylight"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, daylight.MaxLocations, cfg.Compare.MaxLocations)
	require.Equal(t, daylight.Weekly, cfg.Granularity())
	require.False(t, cfg.Cache.Enabled)
	require.Equal(t, daylight.DefaultCacheEntries, cfg.Cache.MaxEntries)
	require.Len(t, cfg.BuilderOptions(), 1)
}

func TestLoadFromFileWithEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
  readTimeout: 2s
gazetteer:
  file: places.yaml
compare:
  maxLocations: 4
  defaultGranularity: monthly
cache:
  enabled: true
  ttl: 10m
  maxEntries: 256
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("GAZETTEER_DB", "/tmp/places.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, 2*time.Second, cfg.HTTP.ReadTimeout)
	require.Equal(t, 10*time.Second, cfg.HTTP.WriteTimeout)
	require.Equal(t, "places.yaml", cfg.Gazetteer.File)
	require.Equal(t, "/tmp/places.db", cfg.Gazetteer.SQLitePath)
	require.Equal(t, 4, cfg.Compare.MaxLocations)
	require.Equal(t, daylight.Monthly, cfg.Granularity())
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	require.Equal(t, 256, cfg.Cache.MaxEntries)
	require.Len(t, cfg.BuilderOptions(), 3)
}

func TestCacheTTLEnvEnablesCache(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("CACHE_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, time.Hour, cfg.Cache.TTL)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Compare.MaxLocations = 0
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Compare.DefaultGranularity = "daily"
	require.ErrorIs(t, cfg.Validate(), daylight.ErrUnknownGranularity)

	cfg = defaultConfig()
	cfg.HTTP.Address = ""
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.MaxEntries = 0
	require.Error(t, cfg.Validate())
}

func TestLoadRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [oops"), 0o600))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	require.Error(t, err)
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
