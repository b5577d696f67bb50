package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the loader from an empty directory so no real config.yaml is picked up
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// viper ignora variables vacías, así el entorno de CI no se filtra al test
	for _, name := range []string{
		"PORT", "CACHE_BACKEND", "REDIS_ADDR", "COINMARKETCAP_API_KEY", "COINGECKO_API_KEY",
		"NEXT_PUBLIC_COINGECKO_API_KEY", "GEMINI_API_KEY", "LOG_LEVEL", "LOG_FORMAT", "ENVIRONMENT",
		"CORS_ALLOWED_ORIGINS", "AUTH_UNAUTH_PATHS", "API_KEY",
	} {
		t.Setenv(name, "")
	}
	return dir
}

func TestLoader_DefaultsWithoutFile(t *testing.T) {
	chdirTemp(t)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
}

func TestLoader_LegacyEnvVars(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "9090")
	t.Setenv("COINMARKETCAP_API_KEY", "cmc-key")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("NEXT_PUBLIC_COINGECKO_API_KEY", "cg-demo")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "cmc-key", cfg.Providers.CoinMarketCap.APIKey)
	assert.Equal(t, "gem-key", cfg.Providers.Gemini.APIKey)
	assert.Equal(t, "cg-demo", cfg.Providers.CoinGecko.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoader_PrefixedEnvVars(t *testing.T) {
	chdirTemp(t)
	t.Setenv("AETHERIUM_SYMBOLS_STALENESS_WINDOW", "30m")
	t.Setenv("AETHERIUM_PROVIDERS_GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("AETHERIUM_CACHE_RESPONSE_TTL", "15s")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.Symbols.StalenessWindow)
	assert.Equal(t, "gemini-2.5-pro", cfg.Providers.Gemini.Model)
	assert.Equal(t, 15*time.Second, cfg.Cache.ResponseTTL)
}

func TestLoader_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	yaml := `
server:
  port: 7000
cache:
  backend: redis
  redis:
    addr: redis:6379
symbols:
  staleness_window: 2h
  snapshot_backend: cache
  warmup_schedule: "@every 55m"
stream:
  interval: 1m
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.yaml"), []byte(yaml), 0o644))

	loader := NewLoader()
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Contains(t, loader.ConfigFileUsed(), "config.yaml")
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 2*time.Hour, cfg.Symbols.StalenessWindow)
	assert.Equal(t, "cache", cfg.Symbols.SnapshotBackend)
	assert.Equal(t, "@every 55m", cfg.Symbols.WarmupSchedule)
	assert.Equal(t, time.Minute, cfg.Stream.Interval)
	// claves no mencionadas conservan el default
	assert.Equal(t, "https://api.coingecko.com/api/v3", cfg.Providers.CoinGecko.BaseURL)

	require.NoError(t, NewValidator().Validate(cfg))
}
