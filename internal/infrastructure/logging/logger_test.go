package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T, level LogLevel) (*StructuredLogger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger, err := NewStructuredLogger(NewTestingConfig(buf).WithLevel(level))
	require.NoError(t, err)
	return logger, buf
}

func decodeEntries(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry LogEntry
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestStructuredLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(t, LevelWarn)
	ctx := context.Background()

	logger.Debug(ctx, "debug", nil)
	logger.Info(ctx, "info", nil)
	logger.Warn(ctx, "warn", nil)
	logger.Error(ctx, "error", nil)

	entries := decodeEntries(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, LevelWarn, entries[0].Level)
	assert.Equal(t, LevelError, entries[1].Level)
}

func TestStructuredLogger_RequestIDAndError(t *testing.T) {
	logger, buf := newBufferLogger(t, LevelDebug)
	ctx := WithRequestID(context.Background(), "req_abc")

	fields := Fields{"k": "v"}
	logger.ErrorWithError(ctx, "boom", errors.New("upstream down"), fields)

	entries := decodeEntries(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "req_abc", entries[0].RequestID)
	assert.Equal(t, "upstream down", entries[0].Fields[FieldError])
	assert.Equal(t, "*errors.errorString", entries[0].Fields[FieldErrorType])
	assert.NotContains(t, fields, FieldError, "caller fields must not be mutated")
}

func TestDomainLogger_SetsDomain(t *testing.T) {
	logger, buf := newBufferLogger(t, LevelDebug)
	set := newLoggerSet(logger)

	set.Symbols.SnapshotRefreshed(context.Background(), 42, 15*time.Millisecond)

	entries := decodeEntries(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "symbols", entries[0].Domain)
	assert.EqualValues(t, 42, entries[0].Fields[FieldSnapshotSize])
}

func TestSnapshotRefreshFailed_LevelDependsOnFallback(t *testing.T) {
	logger, buf := newBufferLogger(t, LevelDebug)
	symbols := NewSymbolLogger(logger)
	ctx := context.Background()

	symbols.SnapshotRefreshFailed(ctx, errors.New("timeout"), true)
	symbols.SnapshotRefreshFailed(ctx, errors.New("timeout"), false)

	entries := decodeEntries(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, LevelWarn, entries[0].Level)
	assert.Equal(t, LevelError, entries[1].Level)
}

func TestHTTPLogger_LevelFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   LogLevel
	}{
		{200, LevelInfo},
		{404, LevelWarn},
		{500, LevelError},
	}

	for _, tt := range tests {
		logger, buf := newBufferLogger(t, LevelDebug)
		NewHTTPLogger(logger).RequestCompleted(context.Background(), "GET", "/api/crypto", tt.status, time.Millisecond)

		entries := decodeEntries(t, buf)
		require.Len(t, entries, 1)
		assert.Equal(t, tt.want, entries[0].Level, "status %d", tt.status)
	}
}

func TestTextFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewStructuredLogger(NewTestingConfig(buf).WithFormat(FormatText))
	require.NoError(t, err)

	logger.Info(WithRequestID(context.Background(), "req_1"), "hello", Fields{"a": 1})

	line := buf.String()
	assert.Contains(t, line, "[INFO]")
	assert.Contains(t, line, "req:req_1")
	assert.Contains(t, line, `fields={"a":1}`)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, DefaultConfig().WithLevel("TRACE").Validate())
	assert.Error(t, DefaultConfig().WithFormat("xml").Validate())
	assert.Error(t, DefaultConfig().WithOutput(nil).Validate())
}

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, LevelDebug, LogLevelFromString("debug"))
	assert.Equal(t, LevelWarn, LogLevelFromString("WARNING"))
	assert.Equal(t, LevelInfo, LogLevelFromString("nonsense"))
	assert.Equal(t, FormatText, LogFormatFromString("TEXT"))
	assert.Equal(t, FormatJSON, LogFormatFromString(""))
}

func TestRequestID(t *testing.T) {
	id := GenerateRequestID()
	assert.True(t, strings.HasPrefix(id, "req_"))
	assert.NotEqual(t, id, GenerateRequestID())
	assert.Len(t, GenerateShortRequestID(), len("req_")+8)

	assert.True(t, IsValidRequestID("abc-123"))
	assert.False(t, IsValidRequestID(""))
	assert.False(t, IsValidRequestID("bad\nid"))
	assert.False(t, IsValidRequestID(strings.Repeat("a", 129)))
}
