package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseNationalID_Invariants validates the parsing invariant:
// "a NationalID is 9 ASCII digits whose weighted sum is divisible by 10".
func TestParseNationalID_Invariants(t *testing.T) {
	t.Run("accepts known-valid 9-digit ID", func(t *testing.T) {
		id, err := ParseNationalID("123456782")
		require.NoError(t, err)
		assert.Equal(t, NationalID("123456782"), id)
	})

	t.Run("pads 8-digit ID with leading zero", func(t *testing.T) {
		// 12345674 carries the check digit the algorithm derives for the
		// padded prefix 01234567 (partial sum 26 -> check digit 4).
		id, err := ParseNationalID("12345674")
		require.NoError(t, err)
		assert.Equal(t, NationalID("012345674"), id)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		id, err := ParseNationalID("  123456782\t")
		require.NoError(t, err)
		assert.Equal(t, NationalID("123456782"), id)
	})

	t.Run("rejects wrong checksum as checksum_mismatch", func(t *testing.T) {
		_, err := ParseNationalID("123456789")
		require.Error(t, err)
		assert.True(t, HasReason(err, ReasonChecksumMismatch))
	})

	t.Run("8-digit input must satisfy the checksum after padding", func(t *testing.T) {
		// The upstream docs claim 12345678 is valid; the algorithm says the
		// padded form 012345678 sums to 34. The algorithm wins.
		_, err := ParseNationalID("12345678")
		require.Error(t, err)
		assert.True(t, HasReason(err, ReasonChecksumMismatch))
	})
}

func TestParseNationalID_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too short", "1234567"},
		{"too long", "1234567890"},
		{"empty", ""},
		{"whitespace only", "   "},
		{"letters", "12345678a"},
		{"embedded dash", "123-45-678"},
		{"unicode digits", "١٢٣٤٥٦٧٨٢"},
		{"null byte", "12345678\x00"},
		{"oversized", strings.Repeat("1", 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNationalID(tt.input)
			require.Error(t, err)
			assert.True(t, HasReason(err, ReasonMalformed), "want malformed, got %v", err)
		})
	}
}

// TestParseNationalID_ChecksumTable pins the algorithm against values derived
// by hand from the weighted-sum definition.
func TestParseNationalID_ChecksumTable(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"123456782", true},  // adjusted sum 40
		{"320780695", true},  // adjusted sum 40
		{"000000000", true},  // adjusted sum 0
		{"123456789", false}, // adjusted sum 47
		{"320780694", false}, // adjusted sum 39; upstream docs call this valid
		{"123456783", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, err := ParseNationalID(tt.input)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, NationalID(tt.input), id)
			} else {
				require.Error(t, err)
				assert.True(t, HasReason(err, ReasonChecksumMismatch))
			}
		})
	}
}

// TestParseNationalID_Idempotent verifies that re-parsing a normalized value
// returns the same value: normalization is a fixed point.
func TestParseNationalID_Idempotent(t *testing.T) {
	id, err := ParseNationalID("12345674")
	require.NoError(t, err)

	again, err := ParseNationalID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, again)
}
