// Package logging builds the process slog logger from configuration.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/recera/mission-control/internal/config"
	"github.com/recera/mission-control/pkg/reactive"
	"github.com/recera/mission-control/pkg/scheduler"
)

// ParseLevel maps a config level name to a slog level
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// New builds a logger writing to w in the configured format
func New(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return slog.New(handler), nil
}

// Setup builds the logger with New and installs it as the default. At
// debug level the scheduler and reactive traces are routed to it too.
func Setup(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	logger, err := New(cfg, w)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	if logger.Enabled(context.Background(), slog.LevelDebug) {
		EnableTracing(logger)
	} else {
		scheduler.SetDebugLog(nil)
		reactive.SetDebugLog(nil)
	}
	return logger, nil
}

// EnableTracing sends scheduler and reactive trace lines to logger at
// debug level
func EnableTracing(logger *slog.Logger) {
	trace := func(component string) func(args ...interface{}) {
		l := logger.With("component", component)
		return func(args ...interface{}) {
			l.Debug(strings.TrimSpace(fmt.Sprintln(args...)))
		}
	}
	scheduler.SetDebugLog(trace("scheduler"))
	reactive.SetDebugLog(trace("reactive"))
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
