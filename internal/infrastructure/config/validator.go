package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Validator valida la configuración cargada
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate valida toda la configuración. Provider API keys are not required here:
// a missing key only fails the routes that need it.
func (v *Validator) Validate(config *Config) error {
	if err := v.validateServer(config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := v.validateCache(config.Cache); err != nil {
		return fmt.Errorf("cache config validation failed: %w", err)
	}

	if err := v.validateSymbols(config.Symbols, config.Cache); err != nil {
		return fmt.Errorf("symbols config validation failed: %w", err)
	}

	if err := v.validateProviders(config.Providers); err != nil {
		return fmt.Errorf("providers config validation failed: %w", err)
	}

	if err := v.validateRateLimit(config.RateLimit); err != nil {
		return fmt.Errorf("rate limit config validation failed: %w", err)
	}

	if err := v.validateAuth(config.Auth); err != nil {
		return fmt.Errorf("auth config validation failed: %w", err)
	}

	if err := v.validateStream(config.Stream); err != nil {
		return fmt.Errorf("stream config validation failed: %w", err)
	}

	if err := v.validateLogging(config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	return nil
}

func (v *Validator) validateServer(config ServerConfig) error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid port: %d, must be between 1-65535", config.Port)
	}

	if config.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got: %v", config.ShutdownTimeout)
	}

	if config.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("shutdown_timeout too long: %v, max 5 minutes", config.ShutdownTimeout)
	}

	if config.ReadTimeout < 0 || config.WriteTimeout < 0 || config.IdleTimeout < 0 {
		return fmt.Errorf("server timeouts cannot be negative")
	}

	return nil
}

func (v *Validator) validateCache(config CacheConfig) error {
	validBackends := []string{"memory", "redis"}
	if !contains(validBackends, config.Backend) {
		return fmt.Errorf("invalid cache backend: %s, must be one of: %v", config.Backend, validBackends)
	}

	// 0 deshabilita el cache de respuestas
	if config.ResponseTTL < 0 {
		return fmt.Errorf("response_ttl cannot be negative, got: %v", config.ResponseTTL)
	}

	if config.ResponseTTL > 24*time.Hour {
		return fmt.Errorf("response_ttl too long: %v, max 24 hours", config.ResponseTTL)
	}

	if config.Backend == "redis" {
		if err := v.validateRedis(config.Redis); err != nil {
			return err
		}
	}

	return nil
}

func (v *Validator) validateRedis(config RedisConfig) error {
	if config.Addr == "" {
		return fmt.Errorf("redis addr cannot be empty")
	}

	if !strings.Contains(config.Addr, ":") {
		return fmt.Errorf("invalid redis addr format: %s, expected host:port", config.Addr)
	}

	if config.DB < 0 || config.DB > 15 {
		return fmt.Errorf("invalid redis DB: %d, must be between 0-15", config.DB)
	}

	if config.ConnectRetries < 1 || config.ConnectRetries > 10 {
		return fmt.Errorf("redis connect_retries must be between 1-10, got: %d", config.ConnectRetries)
	}

	return nil
}

func (v *Validator) validateSymbols(config SymbolsConfig, cache CacheConfig) error {
	if config.StalenessWindow < time.Minute {
		return fmt.Errorf("staleness_window too short: %v, min 1 minute", config.StalenessWindow)
	}

	if config.StalenessWindow > 7*24*time.Hour {
		return fmt.Errorf("staleness_window too long: %v, max 7 days", config.StalenessWindow)
	}

	switch config.SnapshotBackend {
	case "memory":
	case "cache":
		if config.SnapshotKey == "" {
			return fmt.Errorf("snapshot_key cannot be empty when snapshot_backend is cache")
		}
	default:
		return fmt.Errorf("invalid snapshot_backend: %s, must be memory or cache", config.SnapshotBackend)
	}

	if config.WarmupSchedule != "" {
		if _, err := cron.ParseStandard(config.WarmupSchedule); err != nil {
			return fmt.Errorf("invalid warmup_schedule %q: %w", config.WarmupSchedule, err)
		}
	}

	return nil
}

func (v *Validator) validateProviders(config ProvidersConfig) error {
	providers := map[string]ProviderConfig{
		"coinmarketcap": config.CoinMarketCap,
		"coingecko":     config.CoinGecko,
	}
	for name, provider := range providers {
		if err := v.validateURL(provider.BaseURL, name+" base_url"); err != nil {
			return err
		}
		if err := v.validateTimeout(provider.Timeout, name+" timeout"); err != nil {
			return err
		}
	}

	gemini := config.Gemini
	// base_url vacío usa el endpoint por defecto del SDK
	if gemini.BaseURL != "" {
		if err := v.validateURL(gemini.BaseURL, "gemini base_url"); err != nil {
			return err
		}
	}
	if err := v.validateTimeout(gemini.Timeout, "gemini timeout"); err != nil {
		return err
	}
	if gemini.Model == "" {
		return fmt.Errorf("gemini model cannot be empty")
	}
	if gemini.MaxOutputTokens <= 0 {
		return fmt.Errorf("gemini max_output_tokens must be positive, got: %d", gemini.MaxOutputTokens)
	}
	if gemini.Temperature < 0 || gemini.Temperature > 2 {
		return fmt.Errorf("gemini temperature must be between 0-2, got: %v", gemini.Temperature)
	}

	return nil
}

// validateTimeout: every upstream call must be bounded
func (v *Validator) validateTimeout(timeout time.Duration, fieldName string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s must be positive, got: %v", fieldName, timeout)
	}
	if timeout > 2*time.Minute {
		return fmt.Errorf("%s too long: %v, max 2 minutes", fieldName, timeout)
	}
	return nil
}

func (v *Validator) validateRateLimit(config RateLimitConfig) error {
	if config.Enabled {
		if config.Capacity <= 0 {
			return fmt.Errorf("rate_limit capacity must be positive when enabled, got: %d", config.Capacity)
		}

		if config.RefillRate <= 0 {
			return fmt.Errorf("rate_limit refill_rate must be positive when enabled, got: %d", config.RefillRate)
		}

		if config.Capacity > 10000 {
			return fmt.Errorf("rate_limit capacity too high: %d, max 10000", config.Capacity)
		}

		if config.RefillRate > 1000 {
			return fmt.Errorf("rate_limit refill_rate too high: %d, max 1000", config.RefillRate)
		}
	}

	return nil
}

func (v *Validator) validateAuth(config AuthConfig) error {
	if !config.Enabled {
		return nil
	}
	if config.APIKey == "" {
		return fmt.Errorf("api_key is required when auth is enabled")
	}
	if config.HeaderName == "" {
		return fmt.Errorf("header_name cannot be empty when auth is enabled")
	}
	return nil
}

func (v *Validator) validateStream(config StreamConfig) error {
	if !config.Enabled {
		return nil
	}
	if config.Interval < 10*time.Second {
		return fmt.Errorf("stream interval too short: %v, min 10 seconds", config.Interval)
	}
	if config.PingInterval <= 0 || config.WriteTimeout <= 0 {
		return fmt.Errorf("stream ping_interval and write_timeout must be positive")
	}
	return nil
}

func (v *Validator) validateLogging(config LoggingConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, strings.ToLower(config.Level)) {
		return fmt.Errorf("invalid log level: %s, must be one of: %v", config.Level, validLevels)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, strings.ToLower(config.Format)) {
		return fmt.Errorf("invalid log format: %s, must be one of: %v", config.Format, validFormats)
	}

	return nil
}

// validateURL valida que una URL sea válida para HTTP/HTTPS
func (v *Validator) validateURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid %s: %s, error: %v", fieldName, rawURL, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("invalid %s scheme: %s, must be http or https", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s must have a host", fieldName)
	}

	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
