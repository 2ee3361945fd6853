// Package router assembles the echo application: global middleware, the
// system route, and the resource route groups.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/eternalzzx/blog-server/internal/handler"
	"github.com/eternalzzx/blog-server/internal/middleware"
	"github.com/eternalzzx/blog-server/internal/server"
	"github.com/eternalzzx/blog-server/internal/service"
)

// New builds the router with all middleware and routes registered.
func New(s *server.Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	mws := middleware.NewMiddlewares(s)
	e.HTTPErrorHandler = mws.Global.ErrorHandler
	e.Use(
		mws.Global.CORS(),
		mws.Global.Recover(),
		mws.Global.Secure(),
		middleware.RequestID(),
		mws.ContextEnhancer.Enhance,
		mws.Global.RequestLogger(),
	)

	h := handler.NewHandlers(s, service.NewFactory(s))

	registerSystemRoutes(e, h)
	registerAccountRoutes(e, h)
	registerContentRoutes(e, h)

	return e
}
