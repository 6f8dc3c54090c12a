// Package logger provides structured JSON logging and metrics tracking for afl-tables.
//
// Log entries are written by zap as one JSON object per line with a timestamp, level,
// message, optional error, and a nested "fields" object. Output goes to stderr by
// default so that scrape results on stdout stay machine-readable; NewFile sends entries
// to a size-rotated file instead.
//
// Example usage:
//
//	logger.Info("Season fetched", logger.Fields{
//	    "year":   2019,
//	    "rounds": 27,
//	})
//
//	logger.Error("Season failed", logger.Fields{"year": 1908}, err)
//
//	logger.IncrCounter("matches.parsed")
//	logger.RecordTiming("season.fetch", duration)
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// ParseLevel converts a case-insensitive level name ("debug", "info", "warn", "error")
// into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO", "":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	}
	return "", fmt.Errorf("unknown log level: %q", s)
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger provides structured logging
type Logger struct {
	minLevel Level
	zl       *zap.Logger
	closer   io.Closer
}

// Fields represents structured log fields
type Fields map[string]interface{}

// LogEntry is the JSON shape of a single log line
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

var defaultLogger *Logger

func init() {
	defaultLogger = New(LevelInfo, os.Stderr)
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.MessageKey = "message"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.CallerKey = zapcore.OmitKey
	cfg.StacktraceKey = zapcore.OmitKey
	return cfg
}

func newLogger(level Level, ws zapcore.WriteSyncer, closer io.Closer) *Logger {
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), ws, level.zapLevel())
	return &Logger{
		minLevel: level,
		zl:       zap.New(core),
		closer:   closer,
	}
}

// New creates a new logger with the specified minimum log level and output destination.
// Messages below the minimum level will be discarded.
func New(level Level, output io.Writer) *Logger {
	return newLogger(level, zapcore.Lock(zapcore.AddSync(output)), nil)
}

// NewFile creates a logger that appends to path, rotating the file once it reaches
// maxSizeMB megabytes. Close the logger to release the file.
func NewFile(level Level, path string, maxSizeMB int) *Logger {
	w := &lumberjack.Logger{
		Filename:  path,
		MaxSize:   maxSizeMB,
		LocalTime: true,
		Compress:  true,
	}
	return newLogger(level, zapcore.AddSync(w), w)
}

// SetDefault sets the default package-level logger used by the convenience functions
// (Debug, Info, Warn, Error). This allows centralizing logger configuration.
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Default returns the package-level logger
func Default() *Logger {
	return defaultLogger
}

// Close flushes buffered entries and closes the log file, if any
func (l *Logger) Close() error {
	_ = l.zl.Sync()
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// log writes a structured log entry
func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if !l.shouldLog(level) {
		return
	}

	zfields := make([]zap.Field, 0, len(fields)+2)
	if err != nil {
		zfields = append(zfields, zap.String("error", err.Error()))
	}
	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		zfields = append(zfields, zap.Namespace("fields"))
		for _, k := range keys {
			zfields = append(zfields, zap.Any(k, fields[k]))
		}
	}

	if ce := l.zl.Check(level.zapLevel(), message); ce != nil {
		ce.Write(zfields...)
	}
}

// shouldLog determines if a message should be logged based on level
func (l *Logger) shouldLog(level Level) bool {
	return level.zapLevel() >= l.minLevel.zapLevel()
}

// Debug logs a debug message with optional structured fields.
func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, fields, nil)
}

// Info logs an informational message with optional structured fields.
func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, fields, nil)
}

// Warn logs a warning message with optional structured fields.
// Used for matches that were skipped without failing the season.
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, fields, nil)
}

// Error logs an error message with optional structured fields and an error object.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// AccessWriter returns a writer that logs every line written to it as an INFO entry.
// It lets line-oriented access loggers share the structured log stream.
func (l *Logger) AccessWriter() io.Writer {
	return accessWriter{l}
}

type accessWriter struct {
	l *Logger
}

func (w accessWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		w.l.Info("http access", Fields{"line": string(line)})
	}
	return len(p), nil
}

// Package-level convenience functions using default logger

// Debug logs a debug message with the default logger
func Debug(message string, fields Fields) {
	defaultLogger.Debug(message, fields)
}

// Info logs an info message with the default logger
func Info(message string, fields Fields) {
	defaultLogger.Info(message, fields)
}

// Warn logs a warning message with the default logger
func Warn(message string, fields Fields) {
	defaultLogger.Warn(message, fields)
}

// Error logs an error message with the default logger
func Error(message string, fields Fields, err error) {
	defaultLogger.Error(message, fields, err)
}
