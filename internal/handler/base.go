package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/eternalzzx/blog-server/internal/envelope"
	"github.com/eternalzzx/blog-server/internal/errs"
	"github.com/eternalzzx/blog-server/internal/param"
	"github.com/eternalzzx/blog-server/internal/server"
	"github.com/eternalzzx/blog-server/internal/service"
)

// Handler is the base type that holds shared application dependencies. It is
// embedded by the concrete resource handlers.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler. Returning by value is fine: the
// struct only holds a pointer.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// respond writes the single envelope every handler path produces: the
// service's (code, data) pair on success, the uniformly translated fault
// otherwise.
func respond(c echo.Context, code int, data any, err error) error {
	if err != nil {
		return envelope.Fault(c, err)
	}
	return envelope.JSON(c, code, data)
}

// methodNotAllowed writes the fixed 405 envelope for unsupported methods,
// before any parameter extraction.
func methodNotAllowed(c echo.Context) error {
	return envelope.JSON(c, http.StatusMethodNotAllowed, errs.MsgMethodError)
}

// deleteFunc is one per-identifier service delete call.
type deleteFunc func(ctx context.Context, p service.DeleteParams) (service.DeleteResult, error)

// deleteBatch implements the delete contract shared by all resources.
//
// With a path identifier the request is a one-element batch; without one the
// body field id_list supplies a ";"-delimited batch sharing a single force
// flag. A missing id_list is a parameter error detected before any service
// call. Service calls run sequentially in list order; a fault on one item
// becomes a FAILURE entry and iteration continues.
//
// The top-level code is 200 if at least one item succeeded and 400
// otherwise, so partial success reads as overall success at the HTTP level.
// Deliberate: this mirrors the established API contract, though it deserves
// product review.
func (h Handler) deleteBatch(c echo.Context, id string, del deleteFunc) error {
	body, err := param.ParseBody(c.Request())
	if err != nil {
		return envelope.Fault(c, err)
	}
	force := param.Flag(body, "force")

	var ids []string
	if id != "" {
		ids = []string{id}
	} else {
		raw := param.Lookup(body, "id_list")
		if raw == nil {
			return envelope.Fault(c, errs.NewParamsError())
		}
		ids = param.Split(*raw)
	}

	ctx := c.Request().Context()
	code := http.StatusBadRequest
	results := make([]service.DeleteResult, 0, len(ids))
	for _, target := range ids {
		result, err := del(ctx, service.DeleteParams{DeleteID: target, Force: force})
		if err != nil {
			result = service.DeleteResult{
				Status: service.StatusFailure,
				ID:     target,
				Name:   errs.MessageOf(err),
			}
		}
		if result.Status == service.StatusSuccess {
			code = http.StatusOK
		}
		results = append(results, result)
	}

	return envelope.JSON(c, code, results)
}

// listOrEmpty extracts a ";"-delimited field with create semantics: an
// absent field yields an empty list rather than the unset sentinel.
func listOrEmpty(values url.Values, key string) []string {
	if list := param.List(values, key); list != nil {
		return list
	}
	return []string{}
}
