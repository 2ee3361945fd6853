package errs

import (
	"errors"
	"net/http"
	"strings"
)

// Fixed messages used by the uniform error translation.
const (
	// MsgRequestError is the fallback for faults that carry no message.
	MsgRequestError = "Request error"

	// MsgMethodError is returned for unsupported HTTP methods.
	MsgMethodError = "Method not allowed"

	// MsgParamsError is returned when structural request input is malformed,
	// detected before any service call.
	MsgParamsError = "Parameter error"
)

// Error is the application fault type.
//
// Zero-valued fields mean "not set": a fault with Status 0 defaults to 400
// at translation time, and a fault with an empty Message defaults to
// MsgRequestError. Code is a stable machine identifier (e.g. "NOT_FOUND")
// for clients that do not want to parse messages.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error satisfies the built-in error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return MsgRequestError
	}
	return e.Message
}

// Is reports whether target is also an *Error, so errors.Is can match on the
// type without comparing fields.
func (e *Error) Is(target error) bool {
	_, ok := target.(*Error)
	return ok
}

// WithMessage returns a copy of the fault with Message replaced.
func (e *Error) WithMessage(message string) *Error {
	out := *e
	out.Message = message
	return &out
}

// StatusOf reports the HTTP-style status a fault should surface with.
// Faults without an explicit status, and plain errors, default to 400.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 {
		return e.Status
	}
	return http.StatusBadRequest
}

// MessageOf reports the client-facing message for a fault, defaulting to
// MsgRequestError when it carries none. Plain error text is never leaked.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return MsgRequestError
}

// CodeText converts an HTTP status text into a stable machine code.
//
//	"Bad Request" -> "BAD_REQUEST"
func CodeText(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
