package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadApp_Defaults(t *testing.T) {
	cfg, err := LoadApp("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, CacheMemory, cfg.CacheBackend)
	assert.Equal(t, 10000, cfg.CacheL1Size)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, "thai_admin_units", cfg.MeiliIndex)
	assert.Empty(t, cfg.MongoURL)
}

func TestLoadApp_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  port: "9090"
  env: production
redis:
  url: redis://localhost:6379/0
cache:
  backend: redis
  ttl: 1h
`), 0o644))
	t.Setenv("CACHE_L1_SIZE", "50")

	cfg, err := LoadApp(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, CacheRedis, cfg.CacheBackend)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 50, cfg.CacheL1Size)
}

func TestLoadApp_MissingFile(t *testing.T) {
	_, err := LoadApp(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAppCfg_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     AppCfg
		wantErr bool
	}{
		{"memory", AppCfg{CacheBackend: CacheMemory, CacheL1Size: 1}, false},
		{"none", AppCfg{CacheBackend: CacheNone, CacheL1Size: 1}, false},
		{"redis without url", AppCfg{CacheBackend: CacheRedis, CacheL1Size: 1}, true},
		{"mongo without url", AppCfg{CacheBackend: CacheMongo, CacheL1Size: 1}, true},
		{"hybrid without redis", AppCfg{CacheBackend: CacheHybrid, MongoURL: "mongodb://x", CacheL1Size: 1}, true},
		{"hybrid", AppCfg{CacheBackend: CacheHybrid, MongoURL: "mongodb://x", RedisURL: "redis://x", CacheL1Size: 1}, false},
		{"unknown backend", AppCfg{CacheBackend: "memcached", CacheL1Size: 1}, true},
		{"l1 size", AppCfg{CacheBackend: CacheMemory}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
