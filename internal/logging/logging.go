// Package logging provides the leveled structured logger used by the CLI
// and the watch loop. Engine packages stay log-free; orchestration code
// logs around them.
package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"
)

// Level represents the severity of a log entry.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// LogField represents a key-value pair in structured logging.
type LogField struct {
	Key   string
	Value any
}

// Field creates a LogField from a key-value pair.
func Field(key string, value any) LogField {
	return LogField{Key: key, Value: value}
}

// Logger provides structured logging capabilities with context support.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...LogField)
	Info(ctx context.Context, msg string, fields ...LogField)
	Warn(ctx context.Context, msg string, fields ...LogField)
	Error(ctx context.Context, msg string, err error, fields ...LogField)
	WithFields(fields ...LogField) Logger
}

// NoOpLogger is a logger that discards all log entries.
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(_ context.Context, _ string, _ ...LogField)          {}
func (n *NoOpLogger) Info(_ context.Context, _ string, _ ...LogField)           {}
func (n *NoOpLogger) Warn(_ context.Context, _ string, _ ...LogField)           {}
func (n *NoOpLogger) Error(_ context.Context, _ string, _ error, _ ...LogField) {}
func (n *NoOpLogger) WithFields(_ ...LogField) Logger                           { return n }

// StdLogger writes structured log entries to a writer. It includes trace IDs
// from context when available.
type StdLogger struct {
	fields   []LogField
	minLevel Level
	logger   *log.Logger
	writer   io.Writer
}

// NewStdLogger creates a logger with the given minimum level and writer. A
// nil writer discards everything, equivalent to NoOpLogger.
func NewStdLogger(minLevel Level, writer io.Writer) *StdLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &StdLogger{
		minLevel: minLevel,
		logger:   log.New(writer, "", 0), // no prefix, entries are self-formatted
		writer:   writer,
	}
}

func (s *StdLogger) log(ctx context.Context, level Level, msg string, err error, fields ...LogField) {
	if levelRank[level] < levelRank[s.minLevel] {
		return
	}

	allFields := append(s.fields, fields...)
	if traceID := TraceIDFrom(ctx); traceID != "" {
		allFields = append(allFields, Field("trace_id", traceID))
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("[%s]", time.Now().Format(time.RFC3339)))
	parts = append(parts, fmt.Sprintf("[%s]", level))
	if err != nil {
		parts = append(parts, fmt.Sprintf("[error=%q]", err.Error()))
	}
	parts = append(parts, msg)

	if len(allFields) > 0 {
		var fieldParts []string
		for _, f := range allFields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%v", f.Key, f.Value))
		}
		parts = append(parts, fmt.Sprintf("fields=[%s]", strings.Join(fieldParts, " ")))
	}

	s.logger.Println(strings.Join(parts, " "))
}

func (s *StdLogger) Debug(ctx context.Context, msg string, fields ...LogField) {
	s.log(ctx, LevelDebug, msg, nil, fields...)
}

func (s *StdLogger) Info(ctx context.Context, msg string, fields ...LogField) {
	s.log(ctx, LevelInfo, msg, nil, fields...)
}

func (s *StdLogger) Warn(ctx context.Context, msg string, fields ...LogField) {
	s.log(ctx, LevelWarn, msg, nil, fields...)
}

func (s *StdLogger) Error(ctx context.Context, msg string, err error, fields ...LogField) {
	s.log(ctx, LevelError, msg, err, fields...)
}

func (s *StdLogger) WithFields(fields ...LogField) Logger {
	return &StdLogger{
		fields:   append(s.fields, fields...),
		minLevel: s.minLevel,
		logger:   s.logger,
		writer:   s.writer,
	}
}

// traceIDKey is the context key for trace IDs.
type traceIDKey struct{}

// WithTraceID adds a trace ID to the context for run correlation.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFrom extracts the trace ID from context, if present.
func TraceIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}

// NewTraceID creates a fresh trace ID for run correlation.
func NewTraceID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
