package logging

import (
	"fmt"
	"io"
	"sync"
)

// LoggerSet contiene todos los loggers especializados
type LoggerSet struct {
	Base        Logger
	HTTP        HTTPLogger
	ExternalAPI ExternalAPILogger
	Cache       CacheLogger
	Symbols     SymbolLogger
	Analysis    AnalysisLogger
	Security    SecurityLogger
}

// NewLoggerSet builds every domain logger on top of one structured logger
func NewLoggerSet(config *LoggerConfig) (*LoggerSet, error) {
	base, err := NewStructuredLogger(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create base logger: %w", err)
	}
	return newLoggerSet(base), nil
}

func newLoggerSet(base Logger) *LoggerSet {
	return &LoggerSet{
		Base:        base,
		HTTP:        NewHTTPLogger(base),
		ExternalAPI: NewExternalAPILogger(base),
		Cache:       NewCacheLogger(base),
		Symbols:     NewSymbolLogger(base),
		Analysis:    NewAnalysisLogger(base),
		Security:    NewSecurityLogger(base),
	}
}

var (
	globalMu      sync.RWMutex
	globalLoggers *LoggerSet
)

// InitializeGlobalLoggers reemplaza el set global; se llama una vez desde main
func InitializeGlobalLoggers(config *LoggerConfig) error {
	set, err := NewLoggerSet(config)
	if err != nil {
		return fmt.Errorf("failed to initialize global loggers: %w", err)
	}

	globalMu.Lock()
	globalLoggers = set
	globalMu.Unlock()
	return nil
}

// GetGlobalLoggers retorna el set global, creando uno por defecto si main no lo inicializó
func GetGlobalLoggers() *LoggerSet {
	globalMu.RLock()
	set := globalLoggers
	globalMu.RUnlock()
	if set != nil {
		return set
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLoggers == nil {
		base, _ := NewStructuredLogger(DefaultConfig())
		globalLoggers = newLoggerSet(base)
	}
	return globalLoggers
}

func GetGlobalLogger() Logger {
	return GetGlobalLoggers().Base
}

// NewTestingConfig escribe en out con nivel DEBUG, útil para capturar logs en tests
func NewTestingConfig(out io.Writer) *LoggerConfig {
	return NewConfig("aetherium-service", "test", "testing").
		WithLevel(LevelDebug).
		WithFormat(FormatJSON).
		WithOutput(out)
}
