package omdb

import (
	"errors"
	"fmt"
)

// Sentinel errors for OMDb operations.
var (
	ErrNotFound      = errors.New("omdb: not found")
	ErrMissingAPIKey = errors.New("omdb: api key not configured")
	ErrEmptyTitle    = errors.New("omdb: empty title")
	ErrUnauthorized  = errors.New("omdb: api key rejected")
	ErrRateLimited   = errors.New("omdb: rate limited by server")
	ErrServer        = errors.New("omdb: server error")
	ErrUnavailable   = errors.New("omdb: temporarily unavailable")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op    string // Operation: "lookup"
	Title string
	Err   error
}

func (e *Error) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("omdb %s [%q]: %v", e.Op, e.Title, e.Err)
	}
	return fmt.Sprintf("omdb %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op, title string, err error) error {
	return &Error{Op: op, Title: title, Err: err}
}
