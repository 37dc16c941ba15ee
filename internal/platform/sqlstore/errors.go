package sqlstore

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/vocaexam/internal/store"
)

// PostgreSQL error codes and classes
const (
	// undefinedTableCode is raised when the vocabulary table has not been migrated
	undefinedTableCode = "42P01"

	// connectionExceptionClass covers connection failures (08xxx)
	connectionExceptionClass = "08"

	// invalidAuthorizationClass covers authentication failures (28xxx)
	invalidAuthorizationClass = "28"
)

// sourceName identifies this store in StoreErrors and logs.
const sourceName = "sql"

// MapError maps a database error to a store error.
// Every database failure makes the dataset unavailable; the message tells the
// operator which kind of failure it was.
func MapError(operation string, err error) error {
	if err == nil {
		return nil
	}

	message := "database error"
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		switch {
		case pgErr.Code == undefinedTableCode:
			message = "schema not migrated"
		case strings.HasPrefix(pgErr.Code, connectionExceptionClass):
			message = "connection failed"
		case strings.HasPrefix(pgErr.Code, invalidAuthorizationClass):
			message = "authentication failed"
		}
	case IsMissingTable(err):
		message = "schema not migrated"
	}

	return store.NewStoreError(sourceName, operation, message, errors.Join(store.ErrSourceUnavailable, err))
}

// IsMissingTable reports whether err says the vocabulary table does not exist.
func IsMissingTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == undefinedTableCode
	}
	// modernc.org/sqlite reports a generic SQLITE_ERROR with this text.
	return err != nil && strings.Contains(err.Error(), "no such table")
}
