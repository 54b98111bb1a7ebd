// Package apperr defines the error kinds surfaced to API callers.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind is a machine-readable error category.
type Kind string

const (
	KindInternal          Kind = "internal"
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindRoomUnavailable   Kind = "room_unavailable"
	KindInvalidTransition Kind = "invalid_transition"
	KindUnauthorized      Kind = "unauthorized"
)

// Error is a classified, caller-facing failure.
type Error struct {
	Kind    Kind
	Message string
	// Fields maps input field names to what is wrong with them.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error { return e.Err }

// Validation returns a validation error without field details.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns an error for an id that does not resolve.
func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %q not found", entity, id)}
}

// RoomUnavailable returns an error for a booking attempt on a fully booked room.
func RoomUnavailable(roomID string) *Error {
	return &Error{Kind: KindRoomUnavailable, Message: fmt.Sprintf("room %q is fully booked", roomID)}
}

// InvalidTransition returns an error for a booking status change that has no edge.
func InvalidTransition(from, to string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("booking already processed: cannot move from %s to %s", from, to),
	}
}

// Unauthorized returns the generic authentication failure.
func Unauthorized(reason error) *Error {
	return &Error{Kind: KindUnauthorized, Message: "unauthorized", Err: reason}
}

// KindOf classifies err. Unclassified errors are internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
