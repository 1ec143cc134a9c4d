package voucher

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	compactDateLayout = "20060102"
	displayDateLayout = "02-01-2006"
)

// NormalizeName capitalizes every space-separated token of s: the first
// letter is title-cased and the rest lower-cased.
//
// Only single spaces separate tokens, so runs of spaces produce empty tokens
// that survive unchanged ("john  smith" becomes "John  Smith").
func NormalizeName(s string) string {
	// Casers carry state and must not be shared across goroutines.
	title := cases.Title(language.Und)
	lower := cases.Lower(language.Und)

	tokens := strings.Split(s, " ")
	for i, token := range tokens {
		if token == "" {
			continue
		}
		_, size := utf8.DecodeRuneInString(token)
		tokens[i] = title.String(token[:size]) + lower.String(token[size:])
	}

	return strings.Join(tokens, " ")
}

// FormatDate converts a compact YYYYMMDD date to DD-MM-YYYY.
func FormatDate(raw string) (string, error) {
	if len(raw) != len(compactDateLayout) {
		return "", errNotCompactDate
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return "", errNotCompactDate
		}
	}

	t, err := time.Parse(compactDateLayout, raw)
	if err != nil {
		return "", err
	}

	return t.Format(displayDateLayout), nil
}
