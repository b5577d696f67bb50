package web

import (
	_ "aetherium-service/internal/docs"
	"aetherium-service/internal/infrastructure/config"
	"aetherium-service/internal/infrastructure/metrics"
	"aetherium-service/internal/infrastructure/ratelimit"
	"aetherium-service/internal/infrastructure/web/handlers"
	"aetherium-service/internal/infrastructure/web/middleware"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers agrupa los handlers HTTP; Stream puede ser nil si el websocket está deshabilitado
type Handlers struct {
	Crypto   *handlers.CryptoHandler
	Symbols  *handlers.SymbolHandler
	Coins    *handlers.CoinHandler
	Analysis *handlers.AnalysisHandler
	Health   *handlers.HealthHandler
	Stream   *handlers.StreamHandler
}

// NewRouter registers every route and wraps the router with the middleware chain
func NewRouter(h Handlers, cfg *config.Config) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/ready", h.Health.Ready).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	api := router.PathPrefix("/api").Subrouter()

	// las rutas fijas van antes que /crypto/{id}
	api.HandleFunc("/crypto", h.Crypto.Listings).Methods(http.MethodGet)
	api.HandleFunc("/crypto/symbols/status", h.Symbols.Status).Methods(http.MethodGet)
	if h.Stream != nil {
		api.HandleFunc("/crypto/stream", h.Stream.Stream).Methods(http.MethodGet)
	} else {
		// reservada: sin esto la ruta caería en /crypto/{id}
		api.HandleFunc("/crypto/stream", notFound)
	}
	api.HandleFunc("/crypto/history/{id}", h.Crypto.History).Methods(http.MethodGet)
	api.HandleFunc("/crypto/get-gecko-id/{symbol}", h.Symbols.GeckoID).Methods(http.MethodGet)
	api.HandleFunc("/crypto/chart/{symbol}", h.Coins.ChartBySymbol).Methods(http.MethodGet)
	api.HandleFunc("/crypto/{id}", h.Crypto.Quote).Methods(http.MethodGet)

	api.HandleFunc("/coins/{geckoId}", h.Coins.Detail).Methods(http.MethodGet)
	api.HandleFunc("/coins/{geckoId}/chart", h.Coins.Chart).Methods(http.MethodGet)

	api.HandleFunc("/ai/analyze-coin", h.Analysis.AnalyzeCoin).Methods(http.MethodPost)

	for _, r := range []*mux.Router{router, api} {
		r.NotFoundHandler = http.HandlerFunc(notFound)
		r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	}

	// orden de ejecución: tracing, metrics, cors, logging, rate limit, auth
	var handler http.Handler = router
	handler = middleware.NewAuthMiddleware(cfg.Auth).Handler(handler)
	handler = ratelimit.NewRateLimitMiddleware(cfg.RateLimit).Handler(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = cors.Handler(corsOptions(cfg.CORS))(handler)
	handler = metrics.HTTPMetricsMiddleware(handler)
	handler = middleware.RequestTracingMiddleware(handler)
	return handler
}

func corsOptions(cfg config.CORSConfig) cors.Options {
	return cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   []string{middleware.RequestIDHeader, "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"error":"Not found"}`))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	_, _ = w.Write([]byte(`{"error":"Method not allowed"}`))
}
