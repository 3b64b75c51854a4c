package domain

// PhoneNumber is a normalized Israeli mobile number: exactly 10 ASCII digits
// starting with "05". Formatting characters are stripped during parsing.
type PhoneNumber string

func (p PhoneNumber) String() string { return string(p) }

// ParsePhoneNumber strips every non-digit character from the input and
// validates the remaining digit string. Length is checked before the prefix:
// "050-123-456" is malformed, not a prefix failure.
func ParsePhoneNumber(raw string) (PhoneNumber, error) {
	var b []byte
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			b = append(b, raw[i])
		}
	}
	if len(b) != 10 {
		return "", &ValidationError{
			Field:  FieldPhoneNumber,
			Reason: ReasonMalformed,
			Detail: "must contain exactly 10 digits",
		}
	}
	if b[0] != '0' || b[1] != '5' {
		return "", &ValidationError{
			Field:  FieldPhoneNumber,
			Reason: ReasonInvalidPrefix,
			Detail: "must start with 05",
		}
	}
	return PhoneNumber(b), nil
}
