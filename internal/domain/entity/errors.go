// Package entity defines the domain entities of the magazine back office and
// the typed errors their invariants raise. Entities are mutated exclusively
// through transition methods; state is checked before any field is assigned,
// so a failed call never leaves a partial mutation behind.
package entity

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure so callers can dispatch on the failure
// class without parsing message text.
type Kind string

const (
	// KindValidation marks malformed input: empty login or password,
	// over-long title, non-positive id.
	KindValidation Kind = "validation"

	// KindForbidden marks an invariant or policy violation: mutation after
	// publish, self role-change, missing capability.
	KindForbidden Kind = "forbidden"

	// KindNotFound marks an unknown id in a repository lookup.
	KindNotFound Kind = "not_found"

	// KindConflict marks a transition into the state the entity is
	// already in.
	KindConflict Kind = "conflict"

	// KindConfiguration marks wiring mistakes such as a missing factory
	// registration.
	KindConfiguration Kind = "configuration"
)

// Error is a domain error carrying a kind and a diagnostic message. The kind
// is the dispatch key; the message is detail only.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Message
}

// Is matches on kind, so errors.Is(err, entity.ErrForbidden) holds for any
// forbidden-kind error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Kind sentinels for errors.Is dispatch.
var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrForbidden     = &Error{Kind: KindForbidden}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrConflict      = &Error{Kind: KindConflict}
	ErrConfiguration = &Error{Kind: KindConfiguration}
)

// Validationf returns a validation-kind error.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Forbiddenf returns a forbidden-kind error.
func Forbiddenf(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf returns a not-found-kind error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflictf returns a conflict-kind error.
func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Configurationf returns a configuration-kind error.
func Configurationf(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, unwrapping as needed, or "" when err is not
// a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
