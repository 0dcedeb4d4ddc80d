// Package domainerrors defines the coded error type shared by all services.
//
// Services attach a Code so the presentation layer can translate failures
// without string matching. Stores never import this package; they return
// sentinel errors (pkg/platform/sentinel) which services translate here.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a business failure.
type Code string

const (
	// CodeValidation marks input that fails a business rule: field
	// emptiness, format, range, or future-date checks.
	CodeValidation Code = "validation"
	// CodeDuplicate marks a uniqueness rule violation.
	CodeDuplicate Code = "duplicate"
	// CodeReference marks a missing parent entity.
	CodeReference Code = "reference"
	// CodePermissionDenied marks a failed role check.
	CodePermissionDenied Code = "permission_denied"
	// CodeNotFound marks an absent lookup target.
	CodeNotFound Code = "not_found"
	// CodeIntegrity marks a store-level constraint failure not otherwise
	// classified. The constraint text is preserved in the wrapped error.
	CodeIntegrity Code = "integrity"
	// CodeStore marks a connectivity or transport failure from the store.
	CodeStore Code = "store"
	// CodeInternal is the fallback for unexpected failures.
	CodeInternal Code = "internal"
)

// Error is a coded domain error. The zero value is not valid; construct via
// New, Newf, or Wrap.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error with a fixed message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error, preserving the
// cause for errors.Is/As and for error detail in logs.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err or anything it wraps carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, or CodeInternal when err carries none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
