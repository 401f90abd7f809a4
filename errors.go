package tds

import (
	"errors"
	"strings"
)

// Error kinds. Use errors.Is to classify an error returned by this package.
var (
	ErrConnectionFailed = errors.New("Connection failed")
	ErrNotConnected     = errors.New("Not connected to the database.")
	ErrQueryFailed      = errors.New("Query execution failed")
)

// Error is returned by connection and query operations. Kind is one of the
// Err* sentinels and Reason carries the native library's message, if any.
type Error struct {
	Kind   error
	Reason string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Reason == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Reason
}

// Unwrap returns the error kind so errors.Is matches the sentinels
func (e *Error) Unwrap() error {
	return e.Kind
}

// Is reports whether target is an *Error of the same kind
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

func connectionFailed(reason string) error {
	return &Error{Kind: ErrConnectionFailed, Reason: reason}
}

func queryFailed(reason string) error {
	return &Error{Kind: ErrQueryFailed, Reason: reason}
}

// diagnostic is a message captured from the native library's error or
// message handler.
type diagnostic struct {
	Severity int
	Number   int
	Message  string
	OSError  string
}

func (d diagnostic) text() string {
	msg := strings.TrimSpace(d.Message)
	if d.OSError != "" {
		msg += " (" + strings.TrimSpace(d.OSError) + ")"
	}
	return msg
}

// reason picks the native message when one is available, else fallback
func reason(lib Library, fallback string) string {
	if msg, ok := lib.LastErrorMessage(); ok && msg != "" {
		return msg
	}
	return fallback
}

// IsConnectionError reports whether err is a connection failure
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}

// IsQueryError reports whether err is a query execution failure
func IsQueryError(err error) bool {
	return errors.Is(err, ErrQueryFailed)
}

// IsNotConnected reports whether err was caused by using a connection that
// was never opened or has been closed.
func IsNotConnected(err error) bool {
	return errors.Is(err, ErrNotConnected)
}
