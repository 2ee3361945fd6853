package router

import (
	"github.com/labstack/echo/v4"

	"github.com/eternalzzx/blog-server/internal/handler"
)

// registerAccountRoutes registers the user-account resource. Every method
// lands on the resource dispatcher, which owns method selection and the 405
// contract.
func registerAccountRoutes(e *echo.Echo, h *handler.Handlers) {
	e.Any("/account/users/", h.Users.Operate)
	e.Any("/account/users/:uuid/", h.Users.Operate)
}
