package availability

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// CodeInvalidInput marks requests rejected before any I/O:
	// empty user lists, non-positive durations, inverted or
	// unparseable windows.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeStoreUnavailable marks a failed event-store fetch. The
	// underlying error is wrapped, not retried; retry policy
	// belongs to the store client.
	CodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
)

// Error is the engine's error type. Op names the public operation
// that failed.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Code, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// IsInvalidInput reports whether err is an INVALID_INPUT engine
// error, unwrapping as needed.
func IsInvalidInput(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeInvalidInput
}

// IsStoreUnavailable reports whether err is a STORE_UNAVAILABLE
// engine error, unwrapping as needed.
func IsStoreUnavailable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeStoreUnavailable
}

func invalidInput(op, format string, args ...any) *Error {
	return &Error{Code: CodeInvalidInput, Op: op, Message: fmt.Sprintf(format, args...)}
}

func storeUnavailable(op string, err error) *Error {
	return &Error{Code: CodeStoreUnavailable, Op: op, Message: "event store fetch failed", Err: err}
}
