// Package apperr is the error taxonomy shared by every layer. Each error carries a stable Kind
// that callers can switch on and a message safe to show to API clients.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for API clients.
type Kind string

const (
	KindValidation      Kind = "VALIDATION"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindInvalidToken    Kind = "INVALID_TOKEN"
	KindNotFound        Kind = "NOT_FOUND"
	KindConflict        Kind = "CONFLICT"
	KindInternal        Kind = "INTERNAL"
)

// FieldError is one failed rule on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries a Kind and a public message while preserving the original cause via Unwrap.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Extensions is picked up by the GraphQL executor and rendered under "extensions".
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": string(e.Kind)}
	if len(e.Fields) > 0 {
		ext["fields"] = e.Fields
	}
	return ext
}

// Validation reports malformed input. fields must not be empty.
func Validation(fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "Argument Validation Error", Fields: fields}
}

func Unauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, Message: "Unauthorized"}
}

func InvalidToken(cause error) *Error {
	return &Error{Kind: KindInvalidToken, Message: "Invalid token", cause: cause}
}

// NotFound reports a missing tweet, user or owned row. what is capitalised in the message,
// e.g. NotFound("Tweet") gives "Tweet not found".
func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func Conflict(field, message string) *Error {
	return &Error{
		Kind:    KindConflict,
		Message: message,
		Fields:  []FieldError{{Field: field, Message: message}},
	}
}

// Internal hides a backing-store failure behind a generic message.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", cause: cause}
}

// Wrapf returns an INTERNAL error whose cause keeps the formatted context. An err that
// already carries a Kind is returned as is.
func Wrapf(err error, format string, args ...any) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(fmt.Errorf(format+": %w", append(args, err)...))
}

// KindOf returns the Kind of err, or KindInternal for errors outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err belongs to kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
