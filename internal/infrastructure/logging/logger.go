package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime"
	"strings"
	"sync"
	"time"
)

// StructuredLogger implementa la interfaz Logger con logging estructurado
type StructuredLogger struct {
	mu     sync.RWMutex
	config *LoggerConfig
	logger *log.Logger
}

// LogEntry representa una entrada de log estructurada
type LogEntry struct {
	Timestamp   string   `json:"timestamp"`
	Level       LogLevel `json:"level"`
	Message     string   `json:"message"`
	RequestID   string   `json:"request_id,omitempty"`
	Service     string   `json:"service"`
	Version     string   `json:"version,omitempty"`
	Environment string   `json:"environment,omitempty"`
	Domain      string   `json:"domain,omitempty"`
	Source      string   `json:"source,omitempty"`
	Fields      Fields   `json:"fields,omitempty"`
}

func NewStructuredLogger(config *LoggerConfig) (*StructuredLogger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	return &StructuredLogger{
		config: config,
		logger: log.New(config.Output, "", 0),
	}, nil
}

func (sl *StructuredLogger) shouldLog(level LogLevel) bool {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return levelRank(level) >= levelRank(sl.config.Level)
}

func (sl *StructuredLogger) log(ctx context.Context, level LogLevel, message string, fields Fields) {
	if !sl.shouldLog(level) {
		return
	}

	entry := sl.createLogEntry(ctx, level, message, fields)

	var output string
	if sl.config.Format == FormatText {
		output = sl.formatText(entry)
	} else {
		output = sl.formatJSON(entry)
	}

	sl.logger.Println(output)
}

// createLogEntry copia los campos para no mutar el mapa del llamador
func (sl *StructuredLogger) createLogEntry(ctx context.Context, level LogLevel, message string, fields Fields) *LogEntry {
	entry := &LogEntry{
		Timestamp:   time.Now().UTC().Format(time.RFC3339Nano),
		Level:       level,
		Message:     message,
		Service:     sl.config.Service,
		Version:     sl.config.Version,
		Environment: sl.config.Environment,
		RequestID:   GetRequestID(ctx),
	}

	if len(fields) > 0 {
		entry.Fields = make(Fields, len(fields)+1)
		for k, v := range fields {
			entry.Fields[k] = v
		}
		// domain va al nivel superior de la entrada
		if domain, ok := entry.Fields[FieldDomain].(string); ok {
			entry.Domain = domain
			delete(entry.Fields, FieldDomain)
		}
	}

	if startTime := GetStartTime(ctx); !startTime.IsZero() {
		if entry.Fields == nil {
			entry.Fields = make(Fields)
		}
		if _, ok := entry.Fields[FieldDuration]; !ok {
			entry.Fields[FieldDuration] = float64(time.Since(startTime).Nanoseconds()) / 1e6
		}
	}

	if sl.config.AddSource {
		entry.Source = sl.getSource()
	}

	return entry
}

func (sl *StructuredLogger) formatJSON(entry *LogEntry) string {
	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf("[%s] %s - %s", entry.Level, entry.RequestID, entry.Message)
	}
	return string(jsonData)
}

func (sl *StructuredLogger) formatText(entry *LogEntry) string {
	parts := []string{entry.Timestamp, "[" + string(entry.Level) + "]"}

	if entry.RequestID != "" {
		parts = append(parts, "req:"+entry.RequestID)
	}
	if entry.Domain != "" {
		parts = append(parts, "domain:"+entry.Domain)
	}
	if entry.Source != "" {
		parts = append(parts, "src:"+entry.Source)
	}

	parts = append(parts, entry.Message)
	result := strings.Join(parts, " ")

	if len(entry.Fields) > 0 {
		if fieldsJSON, err := json.Marshal(entry.Fields); err == nil {
			result += " fields=" + string(fieldsJSON)
		}
	}

	return result
}

// getSource walks past the logging package frames to the first caller outside it
func (sl *StructuredLogger) getSource() string {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.Function, "/infrastructure/logging.") {
			name := frame.Function
			if idx := strings.LastIndex(name, "/"); idx != -1 {
				name = name[idx+1:]
			}
			return name
		}
		if !more {
			return ""
		}
	}
}

func (sl *StructuredLogger) Debug(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelDebug, message, fields)
}

func (sl *StructuredLogger) Info(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelInfo, message, fields)
}

func (sl *StructuredLogger) Warn(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelWarn, message, fields)
}

func (sl *StructuredLogger) Error(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelError, message, fields)
}

func (sl *StructuredLogger) InfoWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.log(ctx, LevelInfo, message, withErrorFields(fields, err))
}

func (sl *StructuredLogger) WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.log(ctx, LevelWarn, message, withErrorFields(fields, err))
}

func (sl *StructuredLogger) ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.log(ctx, LevelError, message, withErrorFields(fields, err))
}

func withErrorFields(fields Fields, err error) Fields {
	if err == nil {
		return fields
	}

	enriched := make(Fields, len(fields)+2)
	for k, v := range fields {
		enriched[k] = v
	}
	enriched[FieldError] = err.Error()
	enriched[FieldErrorType] = getErrorType(err)
	return enriched
}

func (sl *StructuredLogger) SetLevel(level LogLevel) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.config.Level = level
}

func (sl *StructuredLogger) GetLevel() LogLevel {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return sl.config.Level
}
