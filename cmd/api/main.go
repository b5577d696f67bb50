package main

import (
	"aetherium-service/internal/application/services"
	"aetherium-service/internal/domain/entities"
	"aetherium-service/internal/domain/interfaces"
	"aetherium-service/internal/infrastructure/config"
	"aetherium-service/internal/infrastructure/logging"
	"aetherium-service/internal/infrastructure/metrics"
	"aetherium-service/internal/infrastructure/providers/coingecko"
	"aetherium-service/internal/infrastructure/providers/coinmarketcap"
	"aetherium-service/internal/infrastructure/providers/gemini"
	"aetherium-service/internal/infrastructure/repositories/cache"
	"aetherium-service/internal/infrastructure/scheduler"
	"aetherium-service/internal/infrastructure/web"
	"aetherium-service/internal/infrastructure/web/handlers"
	"aetherium-service/internal/infrastructure/web/server"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
)

const version = "1.0.0"

// @title Aetherium Market API
// @version 1.0
// @description Market data proxy for the Aetherium dashboard: CoinMarketCap listings, quotes and history, CoinGecko symbol resolution and charts, and Gemini generated coin summaries.
// @BasePath /
func main() {
	loadDotEnv()

	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.NewValidator().Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := initLogging(cfg.Logging); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	ctx := context.Background()
	logging.Info(ctx, "Starting Aetherium service", logging.Fields{
		"version":     version,
		"config_file": loader.ConfigFileUsed(),
		"cache":       cfg.Cache.Backend,
		"snapshot":    cfg.Symbols.SnapshotBackend,
	})
	metrics.SetApplicationInfo(version, cfg.Logging.Environment, runtime.Version())

	if err := run(ctx, cfg); err != nil {
		logging.ErrorWithError(ctx, "Service stopped with error", err, nil)
		os.Exit(1)
	}
}

// loadDotEnv carga .env.local y .env si existen; las variables ya definidas no se pisan
func loadDotEnv() {
	for _, file := range []string{".env.local", ".env"} {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Failed to load %s: %v", file, err)
		}
	}
}

func initLogging(cfg config.LoggingConfig) error {
	loggerConfig := logging.NewConfig("aetherium-service", version, cfg.Environment).
		WithLevel(logging.LogLevelFromString(cfg.Level)).
		WithFormat(logging.LogFormatFromString(cfg.Format)).
		WithSource(cfg.AddSource)
	return logging.InitializeGlobalLoggers(loggerConfig)
}

func run(ctx context.Context, cfg *config.Config) error {
	backend, err := cache.NewFactory().CreateCache(ctx, cache.Config{
		Type:           cache.CacheType(cfg.Cache.Backend),
		RedisAddr:      cfg.Cache.Redis.Addr,
		RedisDB:        cfg.Cache.Redis.DB,
		Password:       cfg.Cache.Redis.Password,
		ConnectRetries: cfg.Cache.Redis.ConnectRetries,
	})
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}
	if closer, ok := backend.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	var store interfaces.SnapshotStore = cache.NewMemorySnapshotStore()
	if cfg.Symbols.SnapshotBackend == "cache" {
		store = cache.NewCacheSnapshotStore(backend, cfg.Symbols.SnapshotKey, cfg.Symbols.StalenessWindow)
	}

	cmc := coinmarketcap.NewClient(cfg.Providers.CoinMarketCap.BaseURL, cfg.Providers.CoinMarketCap.APIKey, cfg.Providers.CoinMarketCap.Timeout)
	gecko := coingecko.NewClient(cfg.Providers.CoinGecko.BaseURL, cfg.Providers.CoinGecko.APIKey, cfg.Providers.CoinGecko.Timeout)
	generator, err := gemini.NewGenerator(ctx, gemini.Config{
		APIKey:  cfg.Providers.Gemini.APIKey,
		BaseURL: cfg.Providers.Gemini.BaseURL,
		Timeout: cfg.Providers.Gemini.Timeout,
	})
	if err != nil {
		return fmt.Errorf("create gemini generator: %w", err)
	}
	warnMissingKeys(ctx, cfg.Providers)

	resolver := services.NewSymbolResolver(gecko, store, cfg.Symbols.StalenessWindow)
	market := services.NewMarketService(cmc, gecko, resolver, cache.NewResponseCache(backend, cfg.Cache.ResponseTTL))
	analysis := services.NewAnalysisService(generator, entities.GenerationConfig{
		Model:           cfg.Providers.Gemini.Model,
		MaxOutputTokens: cfg.Providers.Gemini.MaxOutputTokens,
		Temperature:     cfg.Providers.Gemini.Temperature,
	})

	jobs := scheduler.New(0)
	if cfg.Symbols.WarmupSchedule != "" {
		if err := jobs.AddSymbolsWarmup(cfg.Symbols.WarmupSchedule, resolver); err != nil {
			return err
		}
		// primera carga sin esperar al primer tick
		go jobs.RunSymbolsWarmup(resolver)
		jobs.Start()
	}

	h := web.Handlers{
		Crypto:   handlers.NewCryptoHandler(market),
		Symbols:  handlers.NewSymbolHandler(resolver),
		Coins:    handlers.NewCoinHandler(market),
		Analysis: handlers.NewAnalysisHandler(analysis),
		Health:   handlers.NewHealthHandler(backend, resolver),
	}
	if cfg.Stream.Enabled {
		h.Stream = handlers.NewStreamHandler(market, handlers.StreamOptions{
			Interval:       cfg.Stream.Interval,
			PingInterval:   cfg.Stream.PingInterval,
			WriteTimeout:   cfg.Stream.WriteTimeout,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		})
	}

	srv := server.NewServer(web.NewRouter(h, cfg), cfg.Server)
	if h.Stream != nil {
		srv.OnShutdown(h.Stream.Shutdown)
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		jobs.Stop(ctx)
		return err
	case sig := <-quit:
		logging.Info(ctx, "Shutdown signal received", logging.Fields{"signal": sig.String()})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	jobs.Stop(shutdownCtx)
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logging.Info(ctx, "Server shutdown completed", nil)
	return nil
}

func warnMissingKeys(ctx context.Context, providers config.ProvidersConfig) {
	if providers.CoinMarketCap.APIKey == "" {
		logging.Warn(ctx, "COINMARKETCAP_API_KEY not set; listings, quote and history routes will fail", nil)
	}
	if providers.Gemini.APIKey == "" {
		logging.Warn(ctx, "GEMINI_API_KEY not set; AI analysis route will fail", nil)
	}
}
