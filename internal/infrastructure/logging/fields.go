package logging

import (
	"context"
	"fmt"
	"time"
)

// Fields representa campos estructurados para logs
type Fields map[string]interface{}

// LogLevel representa los diferentes niveles de log
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

// Standard fields
const (
	FieldRequestID  = "request_id"
	FieldDomain     = "domain"
	FieldError      = "error"
	FieldErrorType  = "error_type"
	FieldDuration   = "duration_ms"
	FieldStatusCode = "status_code"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
)

// HTTP request fields
const (
	FieldHTTPMethod     = "http_method"
	FieldHTTPPath       = "http_path"
	FieldHTTPStatusCode = "http_status_code"
	FieldHTTPUserAgent  = "http_user_agent"
	FieldHTTPRemoteIP   = "http_remote_ip"
)

// Upstream provider fields
const (
	FieldExternalService  = "external_service"
	FieldExternalEndpoint = "external_endpoint"
	FieldExternalMethod   = "external_method"
	FieldExternalStatus   = "external_status_code"
	FieldExternalDuration = "external_duration_ms"
)

// Cache fields
const (
	FieldCacheOperation = "cache_operation"
	FieldCacheKey       = "cache_key"
	FieldCacheHit       = "cache_hit"
	FieldCacheTTL       = "cache_ttl_seconds"
)

// Business fields
const (
	FieldSymbol       = "symbol"
	FieldProviderID   = "provider_id"
	FieldCoinName     = "coin_name"
	FieldConvert      = "convert"
	FieldTimeframe    = "timeframe"
	FieldSnapshotSize = "snapshot_entries"
	FieldSnapshotAge  = "snapshot_age_seconds"
	FieldSource       = "source"
	FieldValidation   = "validation"
)

// Security fields
const (
	FieldClientIP         = "client_ip"
	FieldSuspiciousReason = "suspicious_reason"
	FieldRateLimit        = "rate_limit"
)

// Operaciones de cache
const (
	CacheOpGet    = "GET"
	CacheOpSet    = "SET"
	CacheOpDelete = "DELETE"
)

// FieldBuilder ayuda a construir campos de manera estandarizada
type FieldBuilder struct {
	fields Fields
}

func NewFieldBuilder() *FieldBuilder {
	return &FieldBuilder{
		fields: make(Fields),
	}
}

// WithError adds the error message and its concrete type
func (fb *FieldBuilder) WithError(err error) *FieldBuilder {
	if err != nil {
		fb.fields[FieldError] = err.Error()
		fb.fields[FieldErrorType] = getErrorType(err)
	}
	return fb
}

// WithDuration adds a duration in milliseconds
func (fb *FieldBuilder) WithDuration(duration time.Duration) *FieldBuilder {
	fb.fields[FieldDuration] = float64(duration.Nanoseconds()) / 1e6
	return fb
}

func (fb *FieldBuilder) WithHTTPInfo(method, path string, statusCode int) *FieldBuilder {
	fb.fields[FieldHTTPMethod] = method
	fb.fields[FieldHTTPPath] = path
	fb.fields[FieldHTTPStatusCode] = statusCode
	return fb
}

func (fb *FieldBuilder) WithUserAgent(userAgent string) *FieldBuilder {
	if userAgent != "" {
		fb.fields[FieldHTTPUserAgent] = userAgent
	}
	return fb
}

func (fb *FieldBuilder) WithRemoteIP(ip string) *FieldBuilder {
	if ip != "" {
		fb.fields[FieldHTTPRemoteIP] = ip
	}
	return fb
}

// WithExternalAPI adds the outcome of an upstream provider call
func (fb *FieldBuilder) WithExternalAPI(service, endpoint string, statusCode int, duration time.Duration) *FieldBuilder {
	fb.fields[FieldExternalService] = service
	fb.fields[FieldExternalEndpoint] = endpoint
	fb.fields[FieldExternalStatus] = statusCode
	fb.fields[FieldExternalDuration] = float64(duration.Nanoseconds()) / 1e6
	return fb
}

func (fb *FieldBuilder) WithCache(operation, key string, hit bool) *FieldBuilder {
	fb.fields[FieldCacheOperation] = operation
	fb.fields[FieldCacheKey] = key
	fb.fields[FieldCacheHit] = hit
	return fb
}

// WithSymbolContext adds the symbol being resolved and, when known, its provider id
func (fb *FieldBuilder) WithSymbolContext(symbol, providerID, source string) *FieldBuilder {
	fb.fields[FieldSymbol] = symbol
	if providerID != "" {
		fb.fields[FieldProviderID] = providerID
	}
	if source != "" {
		fb.fields[FieldSource] = source
	}
	return fb
}

// WithCustomField añade un campo personalizado (ignora claves vacías y valores nil)
func (fb *FieldBuilder) WithCustomField(key string, value interface{}) *FieldBuilder {
	if key != "" && value != nil {
		fb.fields[key] = value
	}
	return fb
}

// Build retorna los campos construidos, o nil si no hay ninguno
func (fb *FieldBuilder) Build() Fields {
	if len(fb.fields) == 0 {
		return nil
	}
	return fb.fields
}

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	StartTimeKey contextKey = "start_time"
	UserAgentKey contextKey = "user_agent"
	RemoteIPKey  contextKey = "remote_ip"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func WithStartTime(ctx context.Context, startTime time.Time) context.Context {
	return context.WithValue(ctx, StartTimeKey, startTime)
}

func WithUserAgent(ctx context.Context, userAgent string) context.Context {
	return context.WithValue(ctx, UserAgentKey, userAgent)
}

func WithRemoteIP(ctx context.Context, remoteIP string) context.Context {
	return context.WithValue(ctx, RemoteIPKey, remoteIP)
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

func GetStartTime(ctx context.Context) time.Time {
	if startTime, ok := ctx.Value(StartTimeKey).(time.Time); ok {
		return startTime
	}
	return time.Time{}
}

func GetUserAgent(ctx context.Context) string {
	if userAgent, ok := ctx.Value(UserAgentKey).(string); ok {
		return userAgent
	}
	return ""
}

func GetRemoteIP(ctx context.Context) string {
	if remoteIP, ok := ctx.Value(RemoteIPKey).(string); ok {
		return remoteIP
	}
	return ""
}

// getErrorType returns the concrete Go type of err, e.g. "*apperrors.NotFoundError"
func getErrorType(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%T", err)
}
