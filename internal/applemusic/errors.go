package applemusic

import (
	"errors"
	"fmt"
)

// Sentinel errors for iTunes search.
var (
	ErrRateLimited = errors.New("applemusic: rate limited by server")
	ErrBadRequest  = errors.New("applemusic: bad request")
	ErrServer      = errors.New("applemusic: server error")
)

// Error wraps an underlying error with the search term.
type Error struct {
	Op   string
	Term string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("applemusic %s [%s]: %v", e.Op, e.Term, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op, term string, err error) error {
	return &Error{Op: op, Term: term, Err: err}
}
