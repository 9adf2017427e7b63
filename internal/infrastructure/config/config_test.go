package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedEnv = []string{
	"CATALOG_APP_NAME",
	"CATALOG_APP_ENV",
	"CATALOG_APP_PORT",
	"CATALOG_DATABASE_DRIVER",
	"CATALOG_DATABASE_URI",
	"CATALOG_DATABASE_NAME",
	"CATALOG_DATABASE_MAX_OPEN_CONNS",
	"CATALOG_DATABASE_MAX_IDLE_CONNS",
	"CATALOG_CATALOG_UPDATE_MODE",
	"CATALOG_CATALOG_VERIFY_REFERENCES",
	"CATALOG_HTTP_ENVELOPE_SEARCH",
	"CATALOG_TELEMETRY_SAMPLING_RATIO",
	"CATALOG_TELEMETRY_PROFILING_ENABLED",
	"CATALOG_TELEMETRY_PROFILING_SERVER",
	"CATALOG_CACHE_ENABLED",
	"CATALOG_CACHE_BACKEND",
	"CATALOG_CACHE_REDIS_ADDR",
	"CATALOG_CACHE_TTL",
	"DB_URI",
	"PORT",
}

// isolate runs the test in an empty directory with no catalog variables set
func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range managedEnv {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "catalog-service", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, DriverMongoDB, cfg.Database.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "catalog", cfg.Database.Name)
	assert.Equal(t, 10*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, "replace", cfg.Catalog.UpdateMode)
	assert.False(t, cfg.Catalog.VerifyReferences)
	assert.False(t, cfg.HTTP.EnvelopeSearch)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
	assert.Equal(t, "catalog-service", cfg.Telemetry.ServiceName)
	assert.Equal(t, 60*time.Second, cfg.Telemetry.MetricsExportInterval)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "catalog", cfg.Cache.KeyPrefix)
	assert.False(t, cfg.App.IsProduction())
}

func TestLoad_LegacyVariables(t *testing.T) {
	isolate(t)
	t.Setenv("DB_URI", "mongodb://db.internal:27017")
	t.Setenv("PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db.internal:27017", cfg.Database.URI)
	assert.Equal(t, "3000", cfg.App.Port)
}

func TestLoad_PrefixedVariablesWin(t *testing.T) {
	isolate(t)
	t.Setenv("DB_URI", "mongodb://legacy:27017")
	t.Setenv("CATALOG_DATABASE_URI", "mongodb://preferred:27017")
	t.Setenv("CATALOG_CATALOG_UPDATE_MODE", "MERGE")
	t.Setenv("CATALOG_HTTP_ENVELOPE_SEARCH", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://preferred:27017", cfg.Database.URI)
	assert.Equal(t, "merge", cfg.Catalog.UpdateMode)
	assert.True(t, cfg.HTTP.EnvelopeSearch)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("DB_URI=mongodb://from-dotenv:27017\nPORT=4000\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("DB_URI")
		_ = os.Unsetenv("PORT")
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://from-dotenv:27017", cfg.Database.URI)
	assert.Equal(t, "4000", cfg.App.Port)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	toml := `
[database]
driver = "sqlite"
uri = "file::memory:"

[catalog]
verify_references = true

[telemetry]
sampling_ratio = 0.0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file::memory:", cfg.Database.URI)
	assert.True(t, cfg.Catalog.VerifyReferences)
	assert.Equal(t, 0.0, cfg.Telemetry.SamplingRatio)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown driver",
			env:     map[string]string{"CATALOG_DATABASE_DRIVER": "cassandra"},
			wantErr: "database.driver",
		},
		{
			name:    "postgres without uri",
			env:     map[string]string{"CATALOG_DATABASE_DRIVER": "postgres"},
			wantErr: "database.uri",
		},
		{
			name:    "unknown update mode",
			env:     map[string]string{"CATALOG_CATALOG_UPDATE_MODE": "patch"},
			wantErr: "catalog.update_mode",
		},
		{
			name:    "sampling ratio out of range",
			env:     map[string]string{"CATALOG_TELEMETRY_SAMPLING_RATIO": "1.5"},
			wantErr: "telemetry.sampling_ratio",
		},
		{
			name:    "profiling without server",
			env:     map[string]string{"CATALOG_TELEMETRY_PROFILING_ENABLED": "true"},
			wantErr: "telemetry.profiling_server",
		},
		{
			name: "negative cache ttl",
			env: map[string]string{
				"CATALOG_CACHE_ENABLED": "true",
				"CATALOG_CACHE_TTL":     "-1s",
			},
			wantErr: "cache.ttl",
		},
		{
			name:    "unknown cache backend",
			env:     map[string]string{"CATALOG_CACHE_BACKEND": "memcached"},
			wantErr: "cache.backend",
		},
		{
			name: "idle exceeds open",
			env: map[string]string{
				"CATALOG_DATABASE_MAX_OPEN_CONNS": "2",
				"CATALOG_DATABASE_MAX_IDLE_CONNS": "3",
			},
			wantErr: "max_idle_conns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Cache(t *testing.T) {
	isolate(t)
	t.Setenv("CATALOG_CACHE_ENABLED", "true")
	t.Setenv("CATALOG_CACHE_REDIS_ADDR", "redis:6380")
	t.Setenv("CATALOG_CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "redis:6380", cfg.Cache.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
}

func TestLoad_MemoryCache(t *testing.T) {
	isolate(t)
	t.Setenv("CATALOG_CACHE_ENABLED", "true")
	t.Setenv("CATALOG_CACHE_BACKEND", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}
