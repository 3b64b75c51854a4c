package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePhoneNumber(t *testing.T) {
	t.Run("accepts bare 10-digit mobile number", func(t *testing.T) {
		p, err := ParsePhoneNumber("0501234567")
		require.NoError(t, err)
		assert.Equal(t, PhoneNumber("0501234567"), p)
	})

	t.Run("strips dashes and spaces", func(t *testing.T) {
		for _, raw := range []string{"050-123-4567", "050 123 4567", "050.123.4567", "(050) 123-4567"} {
			p, err := ParsePhoneNumber(raw)
			require.NoError(t, err, "input %q", raw)
			assert.Equal(t, PhoneNumber("0501234567"), p)
		}
	})

	t.Run("rejects wrong prefix after length check", func(t *testing.T) {
		_, err := ParsePhoneNumber("0521234567")
		require.Error(t, err)
		assert.True(t, HasReason(err, ReasonInvalidPrefix))
	})

	t.Run("rejects wrong digit counts as malformed", func(t *testing.T) {
		for _, raw := range []string{"050123456", "05012345678", "", "phone", "05-2123-4567-9"} {
			_, err := ParsePhoneNumber(raw)
			require.Error(t, err, "input %q", raw)
			assert.True(t, HasReason(err, ReasonMalformed), "input %q: got %v", raw, err)
		}
	})

	t.Run("short number with bad prefix is malformed, not invalid_prefix", func(t *testing.T) {
		_, err := ParsePhoneNumber("031234567")
		require.Error(t, err)
		assert.True(t, HasReason(err, ReasonMalformed))
	})

	t.Run("idempotent under re-normalization", func(t *testing.T) {
		p, err := ParsePhoneNumber("050-123-4567")
		require.NoError(t, err)
		again, err := ParsePhoneNumber(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, again)
	})
}

func TestValidationError_Classification(t *testing.T) {
	_, err := ParsePhoneNumber("0521234567")
	require.Error(t, err)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, FieldPhoneNumber, ve.Field)
	assert.Equal(t, ReasonInvalidPrefix, ve.Reason)
	assert.NotEmpty(t, ve.Error())
}
