package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lintang-b-s/settlement-search/pkg/catalog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.DataRoot)
	assert.Equal(t, BACKEND_FILE, cfg.Store.Backend)
	assert.Equal(t, 0.3, cfg.Search.DefaultThreshold)
	assert.Equal(t, 6060, cfg.API.Port)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, catalog.DefaultPartitions(), cfg.Catalog)
}

func TestLoadFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "settlement.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_root: /srv/settlements
store:
  backend: bolt
  bolt_path: /srv/settlements/index.db
search:
  default_threshold: 0.25
cache:
  enabled: true
  ttl: 1m
catalog:
  - country: czechia
    kind: city
    data: data/czechia/cities.json
    index: indexes/czechia/cities.idx
`), 0o644))
	t.Setenv("CACHE_ADDR", "redis:6379")
	t.Setenv("API_PORT", "8080")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/settlements", cfg.DataRoot)
	assert.Equal(t, BACKEND_BOLT, cfg.Store.Backend)
	assert.Equal(t, 0.25, cfg.Search.DefaultThreshold)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "redis:6379", cfg.Cache.Addr)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 8080, cfg.API.Port)
	require.Len(t, cfg.Catalog, 1)
	assert.Equal(t, "czechia/city", cfg.Catalog[0].ID.String())
	assert.Equal(t, "indexes/czechia/cities.idx", cfg.Catalog[0].IndexPath)
}

func TestLoadMissingFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Store:  StoreConfig{Backend: BACKEND_FILE},
		Search: SearchConfig{DefaultThreshold: 0.3},
		API:    APIConfig{Port: 6060},
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.Store.Backend = "s3"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Search.DefaultThreshold = 2
	assert.Error(t, bad.Validate())

	bad = valid
	bad.API.Port = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Cache = CacheConfig{Enabled: true}
	assert.Error(t, bad.Validate())
}
