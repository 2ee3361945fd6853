package router

import (
	"github.com/labstack/echo/v4"

	"github.com/eternalzzx/blog-server/internal/handler"
)

// registerContentRoutes registers the content-section resource.
func registerContentRoutes(e *echo.Echo, h *handler.Handlers) {
	e.Any("/content/sections/", h.Sections.Operate)
	e.Any("/content/sections/:id/", h.Sections.Operate)
}
