// Package envelope implements the uniform response shape every endpoint
// replies with: {"code": <int>, "data": <any>}, where code is mirrored into
// the transport-level HTTP status.
package envelope

import (
	"github.com/labstack/echo/v4"

	"github.com/eternalzzx/blog-server/internal/errs"
)

// Envelope wraps every response body. On success Data holds the operation
// payload; on failure it holds the error message.
type Envelope struct {
	Code int `json:"code"`
	Data any `json:"data"`
}

// JSON writes the envelope as the sole response body, with the HTTP status
// line reflecting Code.
func JSON(c echo.Context, code int, data any) error {
	return c.JSON(code, Envelope{Code: code, Data: data})
}

// Fault writes the envelope for a service or parameter fault, applying the
// uniform translation: the fault's status if it carries one (else 400) and
// the fault's message if it carries one (else the generic request error).
func Fault(c echo.Context, err error) error {
	return JSON(c, errs.StatusOf(err), errs.MessageOf(err))
}
