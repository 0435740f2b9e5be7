package datastore

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
)

var (
	// ErrTableNotFound is returned when a statement references a table that does not exist.
	ErrTableNotFound = errors.New("table not found")
	// ErrColumnNotFound is returned when a statement references a column that does not exist.
	ErrColumnNotFound = errors.New("column not found")
	// ErrInvalidDefault is returned when a default value is not valid for the column type.
	ErrInvalidDefault = errors.New("invalid default value for column type")
)

// QueryError is returned when executing a statement fails.
type QueryError struct {
	// Query is the offending statement
	Query string
	// Kind is one of the package sentinel errors, or nil when the failure was not classified
	Kind error
	// Err is the driver error
	Err error
}

// Error implements error.
func (err *QueryError) Error() string {
	if err.Kind != nil {
		return fmt.Sprintf("%s: %q: %v", err.Kind, err.Query, err.Err)
	}
	return fmt.Sprintf("%q: %v", err.Query, err.Err)
}

// Unwrap returns the driver error.
func (err *QueryError) Unwrap() error {
	return err.Err
}

// Is reports whether target is the classified kind of err.
func (err *QueryError) Is(target error) bool {
	return err.Kind != nil && target == err.Kind
}

func translateError(query string, err error) error {
	if err == nil {
		return nil
	}

	qErr := &QueryError{Query: query, Err: err}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UndefinedTable:
			qErr.Kind = ErrTableNotFound
		case pgerrcode.UndefinedColumn:
			qErr.Kind = ErrColumnNotFound
		case pgerrcode.InvalidTextRepresentation,
			pgerrcode.InvalidDatetimeFormat,
			pgerrcode.DatatypeMismatch:
			qErr.Kind = ErrInvalidDefault
		}
	}

	return qErr
}
