// Package textio reads input text and writes reports atomically.
package textio

import (
	"errors"
	"fmt"
)

// Op names the file operation that failed.
type Op string

// File operations reported in OpError.
const (
	OpRead   Op = "read"
	OpCreate Op = "create"
	OpWrite  Op = "write"
)

// ErrInvalidText reports input that does not decode to valid UTF-8.
var ErrInvalidText = errors.New("input is not valid UTF-8 text")

// OpError records a failed file operation and the path it touched.
type OpError struct {
	Op   Op
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// OpOf returns the operation of the first OpError in err's chain.
func OpOf(err error) (Op, bool) {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Op, true
	}
	return "", false
}
