package sqlerr

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/eternalzzx/blog-server/internal/errs"
)

// SQLSTATE codes this layer cares about.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	notNullViolation    = "23502"
	checkViolation      = "23514"
)

// Convert maps a driver error onto an application fault. Errors this layer
// does not recognize pass through unchanged and surface as the generic
// request error.
func Convert(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NewNotFoundError("Record not found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return errs.NewBadRequestError("Duplicate identity field")
		case foreignKeyViolation:
			return errs.NewBadRequestError("Related record not found")
		case notNullViolation, checkViolation:
			return errs.NewBadRequestError("Invalid field value")
		}
	}

	return err
}

// IsNotFound reports whether err is the driver's no-rows result.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
