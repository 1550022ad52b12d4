// Package applog is the shared logging facade used by cmd/swipe and its
// supporting packages: a small interface over slog so callers can swap
// the default implementation for a caller-supplied *slog.Logger in tests.
package applog

import (
	"fmt"
	"log/slog"
)

// Logger is the logging interface used outside pkg/pitch. The DSP core
// itself never logs — it is synchronous and side-effect free per the
// core's concurrency model — so this lives in internal/, not pkg/pitch.
type Logger interface {
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
	Infof(format string, args ...any)
	Debugf(format string, args ...any)
}

type defaultLogger struct{}

// Default returns the package-level logger backed by slog's default handler.
func Default() Logger {
	return defaultLogger{}
}

func (defaultLogger) Errorf(format string, args ...any) {
	slog.Error("swipe: " + fmt.Sprintf(format, args...))
}

func (defaultLogger) Warnf(format string, args ...any) {
	slog.Warn("swipe: " + fmt.Sprintf(format, args...))
}

func (defaultLogger) Infof(format string, args ...any) {
	slog.Info("swipe: " + fmt.Sprintf(format, args...))
}

func (defaultLogger) Debugf(format string, args ...any) {
	slog.Debug("swipe: " + fmt.Sprintf(format, args...))
}

// FromSlog wraps a caller-supplied *slog.Logger, so logs can be routed
// through a logger built with a custom handler without changing call
// sites.
func FromSlog(l *slog.Logger) Logger {
	return &slogLogger{l}
}

type slogLogger struct {
	*slog.Logger
}

func (s *slogLogger) Errorf(format string, args ...any) {
	s.Logger.Error("swipe: " + fmt.Sprintf(format, args...))
}

func (s *slogLogger) Warnf(format string, args ...any) {
	s.Logger.Warn("swipe: " + fmt.Sprintf(format, args...))
}

func (s *slogLogger) Infof(format string, args ...any) {
	s.Logger.Info("swipe: " + fmt.Sprintf(format, args...))
}

func (s *slogLogger) Debugf(format string, args ...any) {
	s.Logger.Debug("swipe: " + fmt.Sprintf(format, args...))
}
