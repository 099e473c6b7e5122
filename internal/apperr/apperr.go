// Package apperr classifies every user-facing failure into one of two
// kinds: input errors (the request names something malformed or
// nonexistent) and access errors (the thing exists but the caller may
// not touch it). The HTTP layer maps the kinds to 400 and 403; nothing
// else about a failure matters to a client.
package apperr

import "errors"

// Kind is the error classification.
type Kind int

const (
	KindInput Kind = iota + 1
	KindAccess
)

// Error is a classified error. Operations declare sentinel instances
// with Input/Access and return them directly or wrapped with %w, so
// both errors.Is (which sentinel) and As (which kind) keep working.
type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Kind returns the classification of the error.
func (e *Error) Kind() Kind { return e.kind }

// Input creates an input-kind error.
func Input(msg string) error { return &Error{kind: KindInput, msg: msg} }

// Access creates an access-kind error.
func Access(msg string) error { return &Error{kind: KindAccess, msg: msg} }

// IsInput reports whether err is (or wraps) an input-kind error.
func IsInput(err error) bool { return kindOf(err) == KindInput }

// IsAccess reports whether err is (or wraps) an access-kind error.
func IsAccess(err error) bool { return kindOf(err) == KindAccess }

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return 0
}
