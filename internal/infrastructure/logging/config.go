package logging

import (
	"io"
	"os"
	"strings"
)

// LoggerConfig contiene la configuración del sistema de logging
type LoggerConfig struct {
	Level       LogLevel  `json:"level" yaml:"level"`
	Format      LogFormat `json:"format" yaml:"format"`
	Output      io.Writer `json:"-" yaml:"-"`
	Service     string    `json:"service" yaml:"service"`
	Version     string    `json:"version" yaml:"version"`
	Environment string    `json:"environment" yaml:"environment"`
	AddSource   bool      `json:"add_source" yaml:"add_source"`
}

// LogFormat representa el formato de salida de los logs
type LogFormat string

const (
	FormatJSON LogFormat = "json"
	FormatText LogFormat = "text"
)

// DefaultConfig retorna la configuración por defecto
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:       LevelInfo,
		Format:      FormatJSON,
		Output:      os.Stdout,
		Service:     "aetherium-service",
		Version:     "1.0.0",
		Environment: "development",
	}
}

func NewConfig(service, version, environment string) *LoggerConfig {
	config := DefaultConfig()
	config.Service = service
	config.Version = version
	config.Environment = environment
	return config
}

func (c *LoggerConfig) WithLevel(level LogLevel) *LoggerConfig {
	c.Level = level
	return c
}

func (c *LoggerConfig) WithFormat(format LogFormat) *LoggerConfig {
	c.Format = format
	return c
}

func (c *LoggerConfig) WithOutput(output io.Writer) *LoggerConfig {
	c.Output = output
	return c
}

// WithSource habilita el nombre de la función llamadora en cada entrada
func (c *LoggerConfig) WithSource(addSource bool) *LoggerConfig {
	c.AddSource = addSource
	return c
}

// Validate valida la configuración
func (c *LoggerConfig) Validate() error {
	if levelRank(c.Level) < 0 {
		return &ConfigError{Field: "level", Value: string(c.Level), Message: "invalid log level"}
	}

	switch c.Format {
	case FormatJSON, FormatText:
	default:
		return &ConfigError{Field: "format", Value: string(c.Format), Message: "invalid log format"}
	}

	if c.Output == nil {
		return &ConfigError{Field: "output", Value: "nil", Message: "output writer cannot be nil"}
	}

	if c.Service == "" {
		return &ConfigError{Field: "service", Value: "", Message: "service name cannot be empty"}
	}

	return nil
}

// ConfigError representa un error de configuración
type ConfigError struct {
	Field   string
	Value   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "' with value '" + e.Value + "': " + e.Message
}

// LogLevelFromString convierte un string a LogLevel; valores desconocidos caen en INFO
func LogLevelFromString(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// LogFormatFromString convierte un string a LogFormat; por defecto JSON
func LogFormatFromString(format string) LogFormat {
	if strings.EqualFold(strings.TrimSpace(format), string(FormatText)) {
		return FormatText
	}
	return FormatJSON
}

// levelRank orders levels; -1 for unknown values
func levelRank(level LogLevel) int {
	switch level {
	case LevelDebug:
		return 0
	case LevelInfo:
		return 1
	case LevelWarn:
		return 2
	case LevelError:
		return 3
	default:
		return -1
	}
}
