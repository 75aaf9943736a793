package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is a stable, machine-readable failure classification. Every error
// the engine surfaces to a caller carries exactly one kind.
type ErrorKind string

const (
	KindUnauthenticated    ErrorKind = "unauthenticated"
	KindInvalidRequest     ErrorKind = "invalid_request"
	KindNotFound           ErrorKind = "not_found"
	KindInvalidState       ErrorKind = "invalid_state"
	KindCapacityExceeded   ErrorKind = "capacity_exceeded"
	KindConflict           ErrorKind = "conflict"
	KindStorageUnavailable ErrorKind = "storage_unavailable"
)

// Error is a caller-visible failure. Current and Capacity are populated for
// capacity_exceeded only.
type Error struct {
	Kind     ErrorKind
	Message  string
	Current  int
	Capacity int
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Unauthenticatedf(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthenticated, Message: fmt.Sprintf(format, args...)}
}

func InvalidRequestf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidStatef(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func CapacityExceeded(stationID string, current, capacity int) *Error {
	return &Error{
		Kind:     KindCapacityExceeded,
		Message:  fmt.Sprintf("station %s holds %d of %d batteries", stationID, current, capacity),
		Current:  current,
		Capacity: capacity,
	}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// StorageError wraps an infrastructure failure. The wrapped error is kept for
// logs only and never rendered into caller-facing messages.
func StorageError(msg string, err error) *Error {
	return &Error{Kind: KindStorageUnavailable, Message: msg, Err: err}
}

// KindOf classifies err, falling back to storage_unavailable for anything the
// engine did not produce itself.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorageUnavailable
}
