// Package sqlerr classifies database driver errors.
//
// Postgres reports a SQLSTATE on *pgconn.PgError. The pure-Go SQLite driver
// only returns text, so its messages are normalized onto the same SQLSTATE
// values. HandleError then turns a recognized code into the *errs.Error the
// HTTP layer responds with.
package sqlerr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tbourn/go-news-backend/internal/errs"
)

// Code is a SQLSTATE value.
type Code string

const (
	InvalidTextRepresentation Code = "22P02"
	NumericValueOutOfRange    Code = "22003"
	NotNullViolation          Code = "23502"
	ForeignKeyViolation       Code = "23503"
	UniqueViolation           Code = "23505"
	CheckViolation            Code = "23514"

	// Other is returned for errors without a recognizable code.
	Other Code = ""
)

// sqliteCodes maps lowercase SQLite constraint messages to SQLSTATE. SQLite
// has no typed-column or integer-range errors to map; those checks happen
// before the write.
var sqliteCodes = []struct {
	fragment string
	code     Code
}{
	{"not null constraint failed", NotNullViolation},
	{"foreign key constraint failed", ForeignKeyViolation},
	{"unique constraint failed", UniqueViolation},
	{"check constraint failed", CheckViolation},
}

// CodeOf reports the SQLSTATE carried by err, or Other.
func CodeOf(err error) Code {
	if err == nil {
		return Other
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return Code(pgErr.Code)
	}
	low := strings.ToLower(err.Error())
	for _, sc := range sqliteCodes {
		if strings.Contains(low, sc.fragment) {
			return sc.code
		}
	}
	return Other
}

// HandleError converts err into an application error.
//
//   - *errs.Error in the chain: returned unchanged (highest precedence)
//   - 22P02 -> 400 "Bad Request"
//   - 23502 -> 400 "Not Null Violation"
//   - 23503 -> 404 "Not found"
//   - 22003 -> 400 "Out of range for type integer"
//   - anything else -> 500 with the cause attached for logging
func HandleError(err error) *errs.Error {
	if err == nil {
		return nil
	}
	if appErr, ok := errs.As(err); ok {
		return appErr
	}
	switch CodeOf(err) {
	case InvalidTextRepresentation:
		return errs.Validation(errs.MsgBadRequest).Wrap(err)
	case NotNullViolation:
		return errs.Validation(errs.MsgNotNull).Wrap(err)
	case ForeignKeyViolation:
		return errs.NotFound(errs.MsgNotFound).Wrap(err)
	case NumericValueOutOfRange:
		return errs.Validation(errs.MsgOutOfRange).Wrap(err)
	default:
		return errs.Internal(err)
	}
}
