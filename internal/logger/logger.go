package logger

import (
	"log/slog"
	"os"
)

var Logger *slog.Logger

func Init() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if os.Getenv("LOG_FORMAT") == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

// ensure returns a usable logger even if Init was skipped (tests, tools).
func ensure() *slog.Logger {
	if Logger == nil {
		return slog.Default()
	}
	return Logger
}

func Info(msg string, args ...any) {
	ensure().Info(msg, args...)
}

func Error(msg string, args ...any) {
	ensure().Error(msg, args...)
}

func Debug(msg string, args ...any) {
	ensure().Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	ensure().Warn(msg, args...)
}
