package ratelimit

import (
	"aetherium-service/internal/infrastructure/config"
	"aetherium-service/internal/infrastructure/logging"
	"aetherium-service/internal/infrastructure/metrics"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultCapacity   = 100
	DefaultRefillRate = 10
)

// DefaultSkipPaths no consumen tokens
var DefaultSkipPaths = []string{"/health", "/ready", "/metrics", "/swagger/"}

// RateLimitMiddleware limits requests per client IP
type RateLimitMiddleware struct {
	limiter   *RateLimiterCollection
	skipPaths []string
	enabled   bool
}

func NewRateLimitMiddleware(cfg config.RateLimitConfig) *RateLimitMiddleware {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	refillRate := cfg.RefillRate
	if refillRate <= 0 {
		refillRate = DefaultRefillRate
	}

	return &RateLimitMiddleware{
		limiter:   NewRateLimiterCollection(capacity, refillRate),
		skipPaths: DefaultSkipPaths,
		enabled:   cfg.Enabled,
	}
}

func (rlm *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rlm.enabled || r.Method == http.MethodOptions || rlm.skip(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		clientID := ClientIP(r)
		allowed, remaining := rlm.limiter.Allow(clientID)

		metrics.RecordRateLimitRequest(allowed)
		metrics.UpdateRateLimitClients(rlm.limiter.Clients())

		if !allowed {
			logging.Security().RateLimitExceeded(r.Context(), clientID, r.URL.Path)
			writeRateLimitError(w)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		next.ServeHTTP(w, r)
	})
}

func (rlm *RateLimitMiddleware) skip(path string) bool {
	for _, p := range rlm.skipPaths {
		if path == p || (strings.HasSuffix(p, "/") && strings.HasPrefix(path, p)) {
			return true
		}
	}
	return false
}

func (rlm *RateLimitMiddleware) Stats() map[string]interface{} {
	stats := rlm.limiter.Stats()
	stats["enabled"] = rlm.enabled
	return stats
}

// ClientIP extracts the caller address, honouring proxy headers
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xRealIP := r.Header.Get("X-Real-IP"); xRealIP != "" {
		return strings.TrimSpace(xRealIP)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeRateLimitError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusTooManyRequests)

	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "Rate limit exceeded. Please slow down your requests.",
	})
}
