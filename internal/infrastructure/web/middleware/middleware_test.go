package middleware

import (
	"aetherium-service/internal/infrastructure/config"
	"aetherium-service/internal/infrastructure/logging"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestTracingMiddleware_GeneratesRequestID(t *testing.T) {
	var seen string
	handler := RequestTracingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.GetRequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/crypto", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.True(t, strings.HasPrefix(seen, "req_"))
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestTracingMiddleware_ReusesIncomingID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		reused   bool
	}{
		{"valido", "frontend-1234", true},
		{"caracteres de control", "bad\nid", false},
		{"demasiado largo", strings.Repeat("a", 200), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequestTracingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

			r := httptest.NewRequest(http.MethodGet, "/health", nil)
			r.Header.Set(RequestIDHeader, tt.incoming)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if tt.reused {
				assert.Equal(t, tt.incoming, w.Header().Get(RequestIDHeader))
			} else {
				assert.NotEqual(t, tt.incoming, w.Header().Get(RequestIDHeader))
				assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
			}
		})
	}
}

func TestGetRemoteIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.1.2.3:4000"
	assert.Equal(t, "10.1.2.3", getRemoteIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", getRemoteIP(r))
}

func TestSuspiciousReason(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"normal", "/api/crypto?convert=GBP", ""},
		{"path traversal", "/api/coins/..%2F..%2Fetc?x=../../etc/passwd", "unusual_request_pattern"},
		{"script", "/api/crypto?convert=%3Cscript%3E", "unusual_request_pattern"},
		{"sql", "/api/crypto?convert=1%20UNION%20SELECT", "unusual_request_pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, suspiciousReason(httptest.NewRequest(http.MethodGet, tt.target, nil)))
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	cfg := config.AuthConfig{
		Enabled:     true,
		APIKey:      "k-123",
		HeaderName:  "X-API-Key",
		UnauthPaths: []string{"/health", "/swagger/"},
	}
	handler := NewAuthMiddleware(cfg).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		path       string
		method     string
		key        string
		wantStatus int
	}{
		{"sin key", "/api/crypto", http.MethodGet, "", http.StatusUnauthorized},
		{"key incorrecta", "/api/crypto", http.MethodGet, "nope", http.StatusUnauthorized},
		{"key correcta", "/api/crypto", http.MethodGet, "k-123", http.StatusNoContent},
		{"ruta exenta", "/health", http.MethodGet, "", http.StatusNoContent},
		{"prefijo exento", "/swagger/index.html", http.MethodGet, "", http.StatusNoContent},
		{"no es prefijo", "/healthz", http.MethodGet, "", http.StatusUnauthorized},
		{"preflight", "/api/crypto", http.MethodOptions, "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.key != "" {
				r.Header.Set("X-API-Key", tt.key)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	handler := NewAuthMiddleware(config.AuthConfig{}).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/crypto", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
