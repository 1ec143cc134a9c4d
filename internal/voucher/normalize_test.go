package voucher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"LowerCase", "abc traders", "Abc Traders"},
		{"UpperCase", "ABC TRADERS", "Abc Traders"},
		{"DoubleSpaceKept", "john  smith", "John  Smith"},
		{"LeadingSpaceKept", " cash", " Cash"},
		{"HyphenNotASeparator", "abc-def ltd", "Abc-def Ltd"},
		{"Digits", "123 main", "123 Main"},
		{"Unicode", "élan ÉTÉ", "Élan Été"},
		{"SharpS", "ßtrasse", "Sstrasse"},
		{"Digraph", "ǆemal", "ǅemal"},
		{"Empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeName(tc.input))
		})
	}
}

func TestNormalizeNameIsIdempotent(t *testing.T) {
	for _, input := range []string{"Cash", "john", "MIXED case  words", "o'brien & sons"} {
		once := NormalizeName(input)
		assert.Equal(t, once, NormalizeName(once), "input %q", input)
	}
}

func TestFormatDate(t *testing.T) {
	got, err := FormatDate("20230115")
	require.NoError(t, err)
	assert.Equal(t, "15-01-2023", got)

	got, err = FormatDate("20240229")
	require.NoError(t, err)
	assert.Equal(t, "29-02-2024", got)
}

func TestFormatDateRejectsMalformedText(t *testing.T) {
	for _, input := range []string{"", "2023115", "202301150", "2023-1-15", "15012023x", "20231301", "20230230", " 2023011"} {
		_, err := FormatDate(input)
		assert.Error(t, err, "input %q", input)
	}
}
