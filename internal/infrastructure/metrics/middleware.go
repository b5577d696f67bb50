package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"
)

// HTTPMetricsMiddleware collects HTTP metrics for Prometheus
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		wrapped := &responseWriterMetrics{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		path := normalizePath(r.URL.Path)
		next.ServeHTTP(wrapped, r)

		RecordHTTPRequest(r.Method, path, wrapped.statusCode, time.Since(startTime).Seconds(), wrapped.written)
	})
}

type responseWriterMetrics struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriterMetrics) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriterMetrics) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Hijack lets the websocket upgrader take over the connection
func (rw *responseWriterMetrics) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	return hj.Hijack()
}

// normalizePath collapses path parameters so label cardinality stays bounded
func normalizePath(path string) string {
	if path == "/" {
		return "/"
	}
	path = strings.TrimSuffix(path, "/")

	switch {
	case path == "/health", path == "/ready", path == "/metrics":
		return path
	case strings.HasPrefix(path, "/swagger"):
		return "/swagger"
	case path == "/api/crypto":
		return "/api/crypto"
	case path == "/api/crypto/stream":
		return "/api/crypto/stream"
	case path == "/api/crypto/symbols/status":
		return "/api/crypto/symbols/status"
	case strings.HasPrefix(path, "/api/crypto/history/"):
		return "/api/crypto/history/{id}"
	case strings.HasPrefix(path, "/api/crypto/get-gecko-id/"):
		return "/api/crypto/get-gecko-id/{symbol}"
	case strings.HasPrefix(path, "/api/crypto/chart/"):
		return "/api/crypto/chart/{symbol}"
	case strings.HasPrefix(path, "/api/crypto/"):
		return "/api/crypto/{id}"
	case strings.HasPrefix(path, "/api/coins/") && strings.HasSuffix(path, "/chart"):
		return "/api/coins/{id}/chart"
	case strings.HasPrefix(path, "/api/coins/"):
		return "/api/coins/{id}"
	case path == "/api/ai/analyze-coin":
		return "/api/ai/analyze-coin"
	case strings.HasPrefix(path, "/api/"):
		return "/api/*"
	default:
		return "/unknown"
	}
}
