package logger

import (
	"log/slog"

	"deploy_networks/internal/app/port"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

// slogAdapter implements port.Logger on top of slog, backed by a zap core.
type slogAdapter struct {
	log *slog.Logger
}

// NewAdapter wraps a zap logger so it can be handed to services expecting port.Logger.
func NewAdapter(zapLogger *zap.Logger) port.Logger {
	return &slogAdapter{log: slog.New(zapslog.NewHandler(zapLogger.Core()))}
}

// NewNop returns a logger discarding everything.
func NewNop() port.Logger {
	return NewAdapter(zap.NewNop())
}

func (a *slogAdapter) Info(msg string, args ...any) {
	a.log.Info(msg, args...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	a.log.Debug(msg, args...)
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	a.log.Warn(msg, args...)
}

func (a *slogAdapter) Error(msg string, args ...any) {
	a.log.Error(msg, args...)
}

// With returns a logger that attaches args to every record.
func (a *slogAdapter) With(args ...any) port.Logger {
	return &slogAdapter{log: a.log.With(args...)}
}
