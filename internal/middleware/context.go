package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eternalzzx/blog-server/internal/server"
)

const loggerKey = "logger"

// nopLogger is handed out when the enhancer did not run (e.g. in tests), so
// GetLogger callers never need a nil check.
var nopLogger = zerolog.Nop()

// ContextEnhancer attaches a request-scoped logger to each request,
// pre-populated with correlation fields.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// Enhance stores a logger enriched with request_id, method, path and client
// IP in the echo context. Runs after RequestID.
func (ce *ContextEnhancer) Enhance(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := ce.server.Logger.With().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Str("ip", c.RealIP()).
			Logger()
		c.Set(loggerKey, &logger)
		return next(c)
	}
}

// GetLogger returns the request-scoped logger, or a disabled logger when the
// enhancer did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(loggerKey).(*zerolog.Logger); ok {
		return logger
	}
	return &nopLogger
}
