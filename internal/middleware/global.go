package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/eternalzzx/blog-server/internal/envelope"
	"github.com/eternalzzx/blog-server/internal/errs"
	"github.com/eternalzzx/blog-server/internal/server"
)

// GlobalMiddlewares groups the middleware applied to every route and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{server: s}
}

// CORS returns echo's CORS middleware configured from server config.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// Recover returns echo's panic recovery middleware, so a panicking handler
// becomes a 500 response instead of a dead process.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure returns echo's secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// RequestLogger emits one structured "API" log line per request with
// severity based on the response status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// When a handler returns an error, echo has not written the final
			// status yet; derive it from the error so failed requests are not
			// logged as 200s.
			if v.Error != nil {
				var fault *errs.Error
				var echoErr *echo.HTTPError
				if errors.As(v.Error, &fault) {
					statusCode = errs.StatusOf(fault)
				} else if errors.As(v.Error, &echoErr) {
					statusCode = echoErr.Code
				}
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// ErrorHandler is the final error funnel. Handlers write their envelopes
// directly, so anything arriving here is framework-level: unknown routes,
// oversized bodies, panics. It still answers with the envelope shape so no
// response ever leaves the contract.
func (global *GlobalMiddlewares) ErrorHandler(err error, c echo.Context) {
	status := http.StatusInternalServerError
	message := http.StatusText(http.StatusInternalServerError)

	var fault *errs.Error
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &fault):
		status = errs.StatusOf(fault)
		message = errs.MessageOf(fault)
	case errors.As(err, &echoErr):
		status = echoErr.Code
		if echoErr.Code == http.StatusNotFound {
			message = "Route not found"
		} else if msg, ok := echoErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(echoErr.Code)
		}
	}

	GetLogger(c).Error().
		Err(err).
		Int("status", status).
		Msg("request failed outside handler boundary")

	if !c.Response().Committed {
		_ = envelope.JSON(c, status, message)
	}
}
