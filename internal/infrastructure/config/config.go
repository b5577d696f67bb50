package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Symbols   SymbolsConfig   `yaml:"symbols" mapstructure:"symbols"`
	Providers ProvidersConfig `yaml:"providers" mapstructure:"providers"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	Auth      AuthConfig      `yaml:"auth" mapstructure:"auth"`
	CORS      CORSConfig      `yaml:"cors" mapstructure:"cors"`
	Stream    StreamConfig    `yaml:"stream" mapstructure:"stream"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" mapstructure:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// CacheConfig selects the shared cache backend. ResponseTTL 0 disables response caching.
type CacheConfig struct {
	Backend     string        `yaml:"backend" mapstructure:"backend"`
	ResponseTTL time.Duration `yaml:"response_ttl" mapstructure:"response_ttl"`
	Redis       RedisConfig   `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig contains Redis-specific configuration
type RedisConfig struct {
	Addr           string `yaml:"addr" mapstructure:"addr"`
	Password       string `yaml:"password" mapstructure:"password"`
	DB             int    `yaml:"db" mapstructure:"db"`
	ConnectRetries uint   `yaml:"connect_retries" mapstructure:"connect_retries"`
}

// SymbolsConfig controla el snapshot de la lista de monedas de CoinGecko
type SymbolsConfig struct {
	StalenessWindow time.Duration `yaml:"staleness_window" mapstructure:"staleness_window"`
	// SnapshotBackend: "memory" keeps it in process, "cache" stores it in the cache backend
	SnapshotBackend string `yaml:"snapshot_backend" mapstructure:"snapshot_backend"`
	SnapshotKey     string `yaml:"snapshot_key" mapstructure:"snapshot_key"`
	// WarmupSchedule is a cron spec, e.g. "@every 55m". Empty disables the job.
	WarmupSchedule string `yaml:"warmup_schedule" mapstructure:"warmup_schedule"`
}

type ProvidersConfig struct {
	CoinMarketCap ProviderConfig `yaml:"coinmarketcap" mapstructure:"coinmarketcap"`
	CoinGecko     ProviderConfig `yaml:"coingecko" mapstructure:"coingecko"`
	Gemini        GeminiConfig   `yaml:"gemini" mapstructure:"gemini"`
}

// ProviderConfig describes one upstream REST provider
type ProviderConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	APIKey  string        `yaml:"api_key" mapstructure:"api_key"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type GeminiConfig struct {
	BaseURL         string        `yaml:"base_url" mapstructure:"base_url"`
	APIKey          string        `yaml:"api_key" mapstructure:"api_key"`
	Timeout         time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Model           string        `yaml:"model" mapstructure:"model"`
	MaxOutputTokens int32         `yaml:"max_output_tokens" mapstructure:"max_output_tokens"`
	Temperature     float32       `yaml:"temperature" mapstructure:"temperature"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled    bool `yaml:"enabled" mapstructure:"enabled"`
	Capacity   int  `yaml:"capacity" mapstructure:"capacity"`
	RefillRate int  `yaml:"refill_rate" mapstructure:"refill_rate"`
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	Enabled     bool     `yaml:"enabled" mapstructure:"enabled"`
	APIKey      string   `yaml:"api_key" mapstructure:"api_key"`
	HeaderName  string   `yaml:"header_name" mapstructure:"header_name"`
	UnauthPaths []string `yaml:"unauth_paths" mapstructure:"unauth_paths"`
}

// CORSConfig for the browser dashboard
type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods" mapstructure:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers" mapstructure:"allowed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials" mapstructure:"allow_credentials"`
	MaxAge           int      `yaml:"max_age" mapstructure:"max_age"`
}

// StreamConfig controls the listings websocket
type StreamConfig struct {
	Enabled      bool          `yaml:"enabled" mapstructure:"enabled"`
	Interval     time.Duration `yaml:"interval" mapstructure:"interval"`
	PingInterval time.Duration `yaml:"ping_interval" mapstructure:"ping_interval"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// LoggingConfig contains logging system configuration
type LoggingConfig struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Format      string `yaml:"format" mapstructure:"format"`
	AddSource   bool   `yaml:"add_source" mapstructure:"add_source"`
	Environment string `yaml:"environment" mapstructure:"environment"`
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Backend:     "memory",
			ResponseTTL: 0,
			Redis: RedisConfig{
				Addr:           "localhost:6379",
				ConnectRetries: 3,
			},
		},
		Symbols: SymbolsConfig{
			StalenessWindow: time.Hour,
			SnapshotBackend: "memory",
			SnapshotKey:     "symbols:coin-list",
		},
		Providers: ProvidersConfig{
			CoinMarketCap: ProviderConfig{
				BaseURL: "https://pro-api.coinmarketcap.com",
				Timeout: 10 * time.Second,
			},
			CoinGecko: ProviderConfig{
				BaseURL: "https://api.coingecko.com/api/v3",
				Timeout: 15 * time.Second,
			},
			Gemini: GeminiConfig{
				Timeout:         45 * time.Second,
				Model:           "gemini-2.5-flash",
				MaxOutputTokens: 5048,
				Temperature:     0.7,
			},
		},
		RateLimit: RateLimitConfig{
			Enabled:    true,
			Capacity:   100,
			RefillRate: 10,
		},
		Auth: AuthConfig{
			Enabled:     false,
			HeaderName:  "X-API-Key",
			UnauthPaths: []string{"/health", "/ready", "/metrics", "/swagger/"},
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", "X-API-Key"},
			MaxAge:         300,
		},
		Stream: StreamConfig{
			Enabled:      true,
			Interval:     5 * time.Minute,
			PingInterval: 30 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:       "info",
			Format:      "json",
			Environment: "development",
		},
	}
}
