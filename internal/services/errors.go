package services

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound means a referenced record does not exist at read time.
var ErrNotFound = errors.New("record not found")

// ErrInvalidArgument means the caller's input cannot be acted on:
// empty duplicate set, unresolved conflicts, malformed date range.
var ErrInvalidArgument = errors.New("invalid argument")

// IsNotFound reports whether err is the not-found sentinel. Repository
// reads surface pgx.ErrNoRows directly, so that counts too.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, pgx.ErrNoRows)
}

// IsInvalidArgument reports whether err is the invalid-argument
// sentinel.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }
