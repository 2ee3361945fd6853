// Package sqlerr converts database driver errors into application faults.
//
// It maps cryptic SQLSTATE codes from the PostgreSQL driver onto the
// envelope fault shape (e.g. a unique violation becomes a 400 with a
// duplicate-field message) so the service layer never leaks driver detail.
package sqlerr
