package middleware

import (
	"aetherium-service/internal/infrastructure/logging"
	"bufio"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"
)

const RequestIDHeader = "X-Request-ID"

// responseWriter captura status y bytes escritos
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.statusCode == 0 {
		rw.statusCode = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Hijack lets the websocket upgrader take over the connection
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// RequestTracingMiddleware assigns a request id (reusing a valid incoming
// X-Request-ID), stores it with the start time in the context and logs the
// completed request.
func RequestTracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || !logging.IsValidRequestID(requestID) {
			requestID = logging.GenerateRequestID()
		}

		startTime := time.Now()
		ctx := logging.WithRequestID(r.Context(), requestID)
		ctx = logging.WithStartTime(ctx, startTime)
		ctx = logging.WithUserAgent(ctx, r.UserAgent())
		ctx = logging.WithRemoteIP(ctx, getRemoteIP(r))

		w.Header().Set(RequestIDHeader, requestID)

		wrapped := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(wrapped, r.WithContext(ctx))

		if wrapped.statusCode == 0 {
			wrapped.statusCode = http.StatusOK
		}
		logging.HTTP().RequestCompleted(ctx, r.Method, r.URL.Path, wrapped.statusCode, time.Since(startTime))
	})
}

// getRemoteIP devuelve la primera IP de X-Forwarded-For, X-Real-IP o RemoteAddr
func getRemoteIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xRealIP := r.Header.Get("X-Real-IP"); xRealIP != "" {
		return xRealIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
