package custom_error

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type CustomError interface {
	Error() string
}

type UniqueViolationError struct {
	message string
	code    string // "23505" on postgres, extended result code on sqlite
}

type ForeignKeyViolationError struct {
	message string
	code    string
}

func (f *ForeignKeyViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", f.message, f.code)
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.message, e.code)
}

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func WrapDBError(message, code string) CustomError {
	switch code {
	case pqUniqueViolation,
		strconv.Itoa(sqlite3.SQLITE_CONSTRAINT_UNIQUE),
		strconv.Itoa(sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY):
		return &UniqueViolationError{
			message: message,
			code:    code,
		}
	case pqForeignKeyViolation, strconv.Itoa(sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY):
		return &ForeignKeyViolationError{
			message: "Value is already used by other resources " + message,
			code:    code,
		}
	default:
		return fmt.Errorf("uncategorized error occurred with code %s: %s", code, message)
	}
}

// Classify inspects a driver error and wraps it with WrapDBError when it
// carries a code. Errors from other sources are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return WrapDBError(pqErr.Message, string(pqErr.Code))
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return WrapDBError(liteErr.Error(), strconv.Itoa(liteErr.Code()))
	}

	return err
}

func IsUniqueViolation(err error) bool {
	var target *UniqueViolationError
	return errors.As(Classify(err), &target)
}
