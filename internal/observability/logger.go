package observability

import (
	"log/slog"
	"os"
)

// Logger is a thin wrapper so packages depend on one type instead of slog
// directly.
type Logger struct {
	l *slog.Logger
}

func NewLogger(level string) *Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})

	return &Logger{l: slog.New(h)}
}

func (lg *Logger) Debug(msg string, kv ...any) { lg.l.Debug(msg, kv...) }
func (lg *Logger) Info(msg string, kv ...any)  { lg.l.Info(msg, kv...) }
func (lg *Logger) Warn(msg string, kv ...any)  { lg.l.Warn(msg, kv...) }
func (lg *Logger) Error(msg string, kv ...any) { lg.l.Error(msg, kv...) }
