package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type implLogger struct {
	logger zerolog.Logger
}

// Options controls where and how entries are written.
type Options struct {
	Level  string
	Format string // "text" or "json"
	Output io.Writer
	// Dir, when set, mirrors every entry into Dir/<timestamp>.log.
	Dir string
}

// New creates a new Logger instance writing text entries to stdout
func New(level string) Logger {
	l, _, _ := NewWithOptions(Options{Level: level})
	return l
}

// NewWithOptions builds a Logger from opts. The returned closer releases
// the log file (if any) and is never nil.
func NewWithOptions(opts Options) (Logger, io.Closer, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if !strings.EqualFold(opts.Format, "json") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime, NoColor: true}
	}

	var closer io.Closer = nopCloser{}
	if opts.Dir != "" {
		f, err := openLogFile(opts.Dir)
		if err != nil {
			return nil, closer, err
		}
		closer = f
		out = zerolog.MultiLevelWriter(out, f)
	}

	zl := zerolog.New(out).Level(parseLevel(opts.Level)).With().Timestamp().Logger()

	return &implLogger{logger: zl}, closer, nil
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel // default to info
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Debug().Msgf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Info().Msgf(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Warn().Msgf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.logger.Error().Msgf(msg, args...)
}

func (l *implLogger) With(key string, value interface{}) Logger {
	return &implLogger{logger: l.logger.With().Interface(key, value).Logger()}
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	name := filepath.Join(dir, time.Now().Format("20060102_150405")+".log")
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
