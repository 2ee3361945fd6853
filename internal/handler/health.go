package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eternalzzx/blog-server/internal/envelope"
	"github.com/eternalzzx/blog-server/internal/middleware"
	"github.com/eternalzzx/blog-server/internal/server"
)

const healthCheckTimeout = 5 * time.Second

// HealthHandler exposes the system endpoint monitors and load balancers use
// to verify the service and its dependencies are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(s)}
}

// Check reports overall status plus per-dependency checks. The database is
// required; redis is a cache, so an unreachable redis is reported but does
// not fail the check.
func (h *HealthHandler) Check(c echo.Context) error {
	logger := middleware.GetLogger(c)

	checks := map[string]any{}
	healthy := true

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	dbStart := time.Now()
	if err := h.server.DB.Pool.Ping(ctx); err != nil {
		healthy = false
		checks["database"] = map[string]any{
			"status":        "unhealthy",
			"response_time": time.Since(dbStart).String(),
			"error":         err.Error(),
		}
		logger.Error().Err(err).Msg("database health check failed")
	} else {
		checks["database"] = map[string]any{
			"status":        "healthy",
			"response_time": time.Since(dbStart).String(),
		}
	}

	redisStart := time.Now()
	if err := h.server.Redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = map[string]any{
			"status":        "unhealthy",
			"response_time": time.Since(redisStart).String(),
			"error":         err.Error(),
		}
		logger.Warn().Err(err).Msg("redis health check failed")
	} else {
		checks["redis"] = map[string]any{
			"status":        "healthy",
			"response_time": time.Since(redisStart).String(),
		}
	}

	status := "healthy"
	code := http.StatusOK
	if !healthy {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	return envelope.JSON(c, code, map[string]any{
		"status":      status,
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	})
}
