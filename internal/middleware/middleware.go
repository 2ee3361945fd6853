// Package middleware holds the HTTP middleware: request identifiers, the
// request-scoped logger, and the global bundle (CORS, panic recovery, secure
// headers, request logging, error funnel).
package middleware
