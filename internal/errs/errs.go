// Package errs defines the structured fault type shared by the service
// layer and the HTTP handlers.
//
// A fault optionally carries an HTTP-style status, a machine-readable code
// and a human-readable message. The accessors StatusOf and MessageOf fill in
// the missing pieces, so translating any fault into a response envelope is a
// total function over a closed error shape.
package errs
