package middleware

import (
	"aetherium-service/internal/application/dto"
	"aetherium-service/internal/infrastructure/config"
	"aetherium-service/internal/infrastructure/logging"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

// AuthMiddleware valida una API key compartida en un header configurable
type AuthMiddleware struct {
	config config.AuthConfig
}

func NewAuthMiddleware(cfg config.AuthConfig) *AuthMiddleware {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-API-Key"
	}
	return &AuthMiddleware{config: cfg}
}

func (am *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !am.config.Enabled || r.Method == http.MethodOptions || am.isUnauthenticatedPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.Header.Get(am.config.HeaderName)
		if apiKey == "" {
			am.respondWithAuthError(w, r, "API key missing")
			return
		}
		if !am.isValidAPIKey(apiKey) {
			am.respondWithAuthError(w, r, "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isUnauthenticatedPath: coincidencia exacta, o por prefijo si la ruta configurada termina en "/"
func (am *AuthMiddleware) isUnauthenticatedPath(path string) bool {
	for _, unauthPath := range am.config.UnauthPaths {
		if path == unauthPath || (strings.HasSuffix(unauthPath, "/") && strings.HasPrefix(path, unauthPath)) {
			return true
		}
	}
	return false
}

func (am *AuthMiddleware) isValidAPIKey(providedKey string) bool {
	if am.config.APIKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(providedKey), []byte(am.config.APIKey)) == 1
}

func (am *AuthMiddleware) respondWithAuthError(w http.ResponseWriter, r *http.Request, reason string) {
	logging.Security().Unauthorized(r.Context(), getRemoteIP(r), reason)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `ApiKey header="`+am.config.HeaderName+`"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(dto.NewErrorResponse(reason))
}
