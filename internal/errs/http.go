package errs

import "net/http"

// New builds a fault with an explicit status, code and message.
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// NewBadRequestError creates a 400 fault with the given message.
func NewBadRequestError(message string) *Error {
	return New(http.StatusBadRequest, CodeText(http.StatusBadRequest), message)
}

// NewNotFoundError creates a 404 fault with the given message.
func NewNotFoundError(message string) *Error {
	return New(http.StatusNotFound, CodeText(http.StatusNotFound), message)
}

// NewForbiddenError creates a 403 fault with the given message.
func NewForbiddenError(message string) *Error {
	return New(http.StatusForbidden, CodeText(http.StatusForbidden), message)
}

// NewParamsError creates the fixed 400 fault for malformed structural input.
func NewParamsError() *Error {
	return New(http.StatusBadRequest, "PARAMS_ERROR", MsgParamsError)
}

// NewInternalServerError creates a generic 500 fault. The message is the
// bare status text; internal detail stays in the logs.
func NewInternalServerError() *Error {
	return New(http.StatusInternalServerError,
		CodeText(http.StatusInternalServerError),
		http.StatusText(http.StatusInternalServerError))
}
