// Package domain holds the identity value types shared by server and client:
// national IDs and phone numbers. Parsing happens at trust boundaries; once a
// value exists it is canonical and immutable.
package domain

import "errors"

// Reason classifies why a raw input was rejected. Callers branch on the
// classification rather than on message text.
type Reason string

const (
	// ReasonMalformed covers wrong length or non-digit characters.
	ReasonMalformed Reason = "malformed"
	// ReasonChecksumMismatch is ID-specific: correct shape, failed check digit.
	ReasonChecksumMismatch Reason = "checksum_mismatch"
	// ReasonInvalidPrefix is phone-specific: correct length, wrong leading digits.
	ReasonInvalidPrefix Reason = "invalid_prefix"
)

// Field names used in validation errors and API responses.
const (
	FieldNationalID  = "id"
	FieldPhoneNumber = "phone_number"
)

// ValidationError is the tagged rejection value returned by the parsers.
type ValidationError struct {
	Field  string
	Reason Reason
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Detail
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// HasReason reports whether err is a ValidationError with the given reason.
func HasReason(err error, reason Reason) bool {
	ve, ok := AsValidationError(err)
	return ok && ve.Reason == reason
}
