package services

import "fmt"

// Kind classifies a domain error so handlers can map it to a status code.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindCapacityExceeded
	KindPermissionDenied
	KindStateViolation
	KindExhaustedRetries
)

// Error is the failure type returned by every service operation.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func errValidation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func errNotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func errConflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func errCapacityExceeded(format string, args ...interface{}) *Error {
	return &Error{Kind: KindCapacityExceeded, Message: fmt.Sprintf(format, args...)}
}

func errPermissionDenied(format string, args ...interface{}) *Error {
	return &Error{Kind: KindPermissionDenied, Message: fmt.Sprintf(format, args...)}
}

func errStateViolation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindStateViolation, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err, or ok=false for non-domain errors.
func KindOf(err error) (Kind, bool) {
	if e, ok := err.(*Error); ok {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
