package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading using Viper
type Loader struct {
	v *viper.Viper
}

func NewLoader() *Loader {
	return &Loader{
		v: viper.New(),
	}
}

// Load reads config.yaml (optional), then env vars, on top of GetDefaultConfig
func (l *Loader) Load() (*Config, error) {
	l.setupViper()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := GetDefaultConfig()
	if err := l.v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	l.overrideWithEnvVars(config)
	return config, nil
}

// ConfigFileUsed devuelve el archivo leído, vacío si solo hubo defaults y env
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) setupViper() {
	l.v.SetConfigName("config")
	l.v.SetConfigType("yaml")

	l.v.AddConfigPath("./configs")
	l.v.AddConfigPath("../configs") // running from cmd/
	l.v.AddConfigPath(".")
	l.v.AddConfigPath("/etc/aetherium")

	// AETHERIUM_SERVER_PORT, AETHERIUM_PROVIDERS_GEMINI_MODEL, ...
	l.v.SetEnvPrefix("AETHERIUM")
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	l.registerDefaults()
	l.bindEnvVars()
}

// registerDefaults makes every key known to viper so AutomaticEnv can override it
// even when no config file mentions the key
func (l *Loader) registerDefaults() {
	d := GetDefaultConfig()
	defaults := map[string]interface{}{
		"server.port":                        d.Server.Port,
		"server.read_timeout":                d.Server.ReadTimeout,
		"server.write_timeout":               d.Server.WriteTimeout,
		"server.idle_timeout":                d.Server.IdleTimeout,
		"server.shutdown_timeout":            d.Server.ShutdownTimeout,
		"cache.backend":                      d.Cache.Backend,
		"cache.response_ttl":                 d.Cache.ResponseTTL,
		"cache.redis.addr":                   d.Cache.Redis.Addr,
		"cache.redis.password":               d.Cache.Redis.Password,
		"cache.redis.db":                     d.Cache.Redis.DB,
		"cache.redis.connect_retries":        d.Cache.Redis.ConnectRetries,
		"symbols.staleness_window":           d.Symbols.StalenessWindow,
		"symbols.snapshot_backend":           d.Symbols.SnapshotBackend,
		"symbols.snapshot_key":               d.Symbols.SnapshotKey,
		"symbols.warmup_schedule":            d.Symbols.WarmupSchedule,
		"providers.coinmarketcap.base_url":   d.Providers.CoinMarketCap.BaseURL,
		"providers.coinmarketcap.api_key":    d.Providers.CoinMarketCap.APIKey,
		"providers.coinmarketcap.timeout":    d.Providers.CoinMarketCap.Timeout,
		"providers.coingecko.base_url":       d.Providers.CoinGecko.BaseURL,
		"providers.coingecko.api_key":        d.Providers.CoinGecko.APIKey,
		"providers.coingecko.timeout":        d.Providers.CoinGecko.Timeout,
		"providers.gemini.base_url":          d.Providers.Gemini.BaseURL,
		"providers.gemini.api_key":           d.Providers.Gemini.APIKey,
		"providers.gemini.timeout":           d.Providers.Gemini.Timeout,
		"providers.gemini.model":             d.Providers.Gemini.Model,
		"providers.gemini.max_output_tokens": d.Providers.Gemini.MaxOutputTokens,
		"providers.gemini.temperature":       d.Providers.Gemini.Temperature,
		"rate_limit.enabled":                 d.RateLimit.Enabled,
		"rate_limit.capacity":                d.RateLimit.Capacity,
		"rate_limit.refill_rate":             d.RateLimit.RefillRate,
		"auth.enabled":                       d.Auth.Enabled,
		"auth.api_key":                       d.Auth.APIKey,
		"auth.header_name":                   d.Auth.HeaderName,
		"auth.unauth_paths":                  d.Auth.UnauthPaths,
		"cors.allowed_origins":               d.CORS.AllowedOrigins,
		"cors.allowed_methods":               d.CORS.AllowedMethods,
		"cors.allowed_headers":               d.CORS.AllowedHeaders,
		"cors.allow_credentials":             d.CORS.AllowCredentials,
		"cors.max_age":                       d.CORS.MaxAge,
		"stream.enabled":                     d.Stream.Enabled,
		"stream.interval":                    d.Stream.Interval,
		"stream.ping_interval":               d.Stream.PingInterval,
		"stream.write_timeout":               d.Stream.WriteTimeout,
		"logging.level":                      d.Logging.Level,
		"logging.format":                     d.Logging.Format,
		"logging.add_source":                 d.Logging.AddSource,
		"logging.environment":                d.Logging.Environment,
	}
	for key, value := range defaults {
		l.v.SetDefault(key, value)
	}
}

// bindEnvVars maps the unprefixed variable names used by existing deployments
func (l *Loader) bindEnvVars() {
	envMappings := map[string][]string{
		"server.port":                      {"PORT"},
		"cache.backend":                    {"CACHE_BACKEND"},
		"cache.response_ttl":               {"RESPONSE_CACHE_TTL"},
		"cache.redis.addr":                 {"REDIS_ADDR"},
		"cache.redis.password":             {"REDIS_PASSWORD"},
		"cache.redis.db":                   {"REDIS_DB"},
		"symbols.staleness_window":         {"SYMBOLS_STALENESS_WINDOW"},
		"symbols.warmup_schedule":          {"SYMBOLS_WARMUP_SCHEDULE"},
		"providers.coinmarketcap.api_key":  {"COINMARKETCAP_API_KEY"},
		"providers.coinmarketcap.base_url": {"COINMARKETCAP_BASE_URL"},
		"providers.coingecko.api_key":      {"COINGECKO_API_KEY", "NEXT_PUBLIC_COINGECKO_API_KEY"},
		"providers.coingecko.base_url":     {"COINGECKO_BASE_URL"},
		"providers.gemini.api_key":         {"GEMINI_API_KEY"},
		"logging.level":                    {"LOG_LEVEL"},
		"logging.format":                   {"LOG_FORMAT"},
		"logging.environment":              {"ENVIRONMENT"},
		"rate_limit.enabled":               {"RATE_LIMIT_ENABLED"},
		"rate_limit.capacity":              {"RATE_LIMIT_CAPACITY"},
		"rate_limit.refill_rate":           {"RATE_LIMIT_REFILL_RATE"},
		"auth.enabled":                     {"AUTH_ENABLED"},
		"auth.api_key":                     {"API_KEY"},
	}

	for configKey, envVars := range envMappings {
		input := append([]string{configKey}, envVars...)
		_ = l.v.BindEnv(input...)
	}
}

// overrideWithEnvVars maneja las listas separadas por comas que viper no parte solo
func (l *Loader) overrideWithEnvVars(config *Config) {
	if origins := splitList(os.Getenv("CORS_ALLOWED_ORIGINS")); len(origins) > 0 {
		config.CORS.AllowedOrigins = origins
	}
	if origins := splitList(os.Getenv("AETHERIUM_CORS_ALLOWED_ORIGINS")); len(origins) > 0 {
		config.CORS.AllowedOrigins = origins
	}
	if paths := splitList(os.Getenv("AUTH_UNAUTH_PATHS")); len(paths) > 0 {
		config.Auth.UnauthPaths = paths
	}
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
