// Package derrors defines coded domain errors. Services and handlers attach a
// stable machine-readable code to every failure so the transport layer can map
// it to an HTTP status and clients can branch without parsing messages.
package derrors

import (
	"errors"
	"net/http"
)

// Code is a stable error classification exposed in API responses.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeValidation   Code = "validation_failed"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeInternal     Code = "internal_error"
)

// Error is a comparable coded error value. Two errors with the same code and
// message satisfy errors.Is, which keeps table tests simple.
type Error struct {
	Code    Code
	Message string

	// Field and Reason carry validation detail for CodeValidation errors
	// and stay empty otherwise.
	Field  string
	Reason string
}

func (e Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Message
}

// New builds a coded error.
func New(code Code, message string) Error {
	return Error{Code: code, Message: message}
}

// NewValidation builds a validation_failed error annotated with the offending
// field and the tagged rejection reason.
func NewValidation(field, reason, message string) Error {
	return Error{Code: CodeValidation, Message: message, Field: field, Reason: reason}
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	var de Error
	return errors.As(err, &de) && de.Code == code
}

// Is is a readability alias for HasCode at call sites that read like
// dErrors.Is(err, dErrors.CodeNotFound).
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// From extracts the coded error from err's chain, defaulting to an internal
// error so unexpected failures never leak details to clients.
func From(err error) Error {
	var de Error
	if errors.As(err, &de) {
		return de
	}
	return Error{Code: CodeInternal, Message: "internal error"}
}

// ToHTTPStatus maps an error code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
