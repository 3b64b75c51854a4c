package domain

import "strings"

// NationalID is a normalized Israeli national ID: exactly 9 ASCII digits that
// satisfy the weighted mod-10 checksum. Values only exist post-validation, so
// holders can treat them as canonical.
type NationalID string

func (id NationalID) String() string { return string(id) }

// ParseNationalID validates and normalizes a raw national ID.
//
// The input must, after trimming, be 8 or 9 ASCII digits; 8-digit IDs are
// left-padded with a single zero before the checksum runs. The checksum
// multiplies each digit by 1 (even positions) or 2 (odd positions), reduces
// two-digit products by 9, and requires the total to be divisible by 10.
func ParseNationalID(raw string) (NationalID, error) {
	s := strings.TrimSpace(raw)
	if len(s) < 8 || len(s) > 9 {
		return "", &ValidationError{
			Field:  FieldNationalID,
			Reason: ReasonMalformed,
			Detail: "must be 8 or 9 digits",
		}
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", &ValidationError{
				Field:  FieldNationalID,
				Reason: ReasonMalformed,
				Detail: "must contain only digits",
			}
		}
	}
	if len(s) == 8 {
		s = "0" + s
	}

	sum := 0
	for i := 0; i < 9; i++ {
		p := int(s[i]-'0') * (1 + i%2)
		if p >= 10 {
			p -= 9
		}
		sum += p
	}
	if sum%10 != 0 {
		return "", &ValidationError{
			Field:  FieldNationalID,
			Reason: ReasonChecksumMismatch,
			Detail: "check digit does not match",
		}
	}
	return NationalID(s), nil
}
