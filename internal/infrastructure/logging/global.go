package logging

import (
	"context"
)

// Funciones globales de conveniencia sobre el logger base global

func Debug(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Debug(ctx, message, fields)
}

func Info(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Info(ctx, message, fields)
}

func Warn(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Warn(ctx, message, fields)
}

func Error(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Error(ctx, message, fields)
}

func WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	GetGlobalLogger().WarnWithError(ctx, message, err, fields)
}

func ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	GetGlobalLogger().ErrorWithError(ctx, message, err, fields)
}

// Loggers especializados globales

func HTTP() HTTPLogger {
	return GetGlobalLoggers().HTTP
}

func ExternalAPI() ExternalAPILogger {
	return GetGlobalLoggers().ExternalAPI
}

func Cache() CacheLogger {
	return GetGlobalLoggers().Cache
}

func Symbols() SymbolLogger {
	return GetGlobalLoggers().Symbols
}

func Analysis() AnalysisLogger {
	return GetGlobalLoggers().Analysis
}

func Security() SecurityLogger {
	return GetGlobalLoggers().Security
}
