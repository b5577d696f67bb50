package middleware

import (
	"aetherium-service/internal/infrastructure/logging"
	"net/http"
	"net/url"
	"strings"
)

// maxSuspiciousBody: cuerpos más grandes se marcan como sospechosos
const maxSuspiciousBody = 1 << 20

var suspiciousPatterns = []string{
	"../",
	"<script",
	"union select",
	"drop table",
	"exec(",
	"eval(",
}

// LoggingMiddleware adds debug request details and flags suspicious requests.
// Completion logging is done by RequestTracingMiddleware.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		logging.Debug(ctx, "Processing HTTP request", logging.Fields{
			logging.FieldHTTPMethod: r.Method,
			logging.FieldHTTPPath:   r.URL.Path,
			"headers":               extractImportantHeaders(r),
			"query":                 r.URL.RawQuery,
			"content_length":        r.ContentLength,
		})

		if reason := suspiciousReason(r); reason != "" {
			logging.Security().SuspiciousActivity(ctx, getRemoteIP(r), reason)
		}

		next.ServeHTTP(w, r)
	})
}

// extractImportantHeaders nunca incluye credenciales
func extractImportantHeaders(r *http.Request) map[string]string {
	headers := make(map[string]string)
	for _, header := range []string{"Content-Type", "Accept", "Origin", "X-Forwarded-For", "X-Real-IP"} {
		if value := r.Header.Get(header); value != "" {
			headers[header] = value
		}
	}
	return headers
}

func suspiciousReason(r *http.Request) string {
	if r.ContentLength > maxSuspiciousBody {
		return "oversized_body"
	}

	path := strings.ToLower(r.URL.Path)
	query := r.URL.RawQuery
	if unescaped, err := url.QueryUnescape(query); err == nil {
		query = unescaped
	}
	query = strings.ToLower(query)
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(path, pattern) || strings.Contains(query, pattern) {
			return "unusual_request_pattern"
		}
	}
	return ""
}
