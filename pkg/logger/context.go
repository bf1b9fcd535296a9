package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// contextKey is a private type so the logger key can't collide with keys from
// other packages
type contextKey int

const loggerKey contextKey = iota

// WithLogger returns a copy of the context carrying the given logger
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the request-scoped logger. Middleware stores an
// enriched child logger under "logger" in the Echo context; requests that
// never passed through the middleware fall back to the global logger.
func FromContext(c echo.Context) *zap.Logger {
	if l, ok := c.Get("logger").(*zap.Logger); ok {
		return l
	}
	if l, ok := c.Request().Context().Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.L()
}
