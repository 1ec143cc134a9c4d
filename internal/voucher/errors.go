package voucher

import (
	"errors"
	"fmt"
)

// MissingFieldError reports a required element that is absent or empty.
type MissingFieldError struct {
	// Voucher is the voucher number, empty when it could not be read.
	Voucher string

	// Field is the element name, qualified with its parent when useful.
	Field string
}

func (e *MissingFieldError) Error() string {
	if e.Voucher == "" {
		return fmt.Sprintf("voucher (unnumbered): missing required field %s", e.Field)
	}
	return fmt.Sprintf("voucher %s: missing required field %s", e.Voucher, e.Field)
}

// DateFormatError reports a voucher date that is not a YYYYMMDD calendar date.
type DateFormatError struct {
	Voucher string
	Value   string
	Err     error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("voucher %s: invalid date %q: %v", e.Voucher, e.Value, e.Err)
}

func (e *DateFormatError) Unwrap() error {
	return e.Err
}

// AmountFormatError reports an amount whose text is not a decimal number.
type AmountFormatError struct {
	Voucher string
	Field   string
	Value   string
	Err     error
}

func (e *AmountFormatError) Error() string {
	return fmt.Sprintf("voucher %s: invalid amount %q in %s: %v", e.Voucher, e.Value, e.Field, e.Err)
}

func (e *AmountFormatError) Unwrap() error {
	return e.Err
}

// errNotCompactDate is the cause wrapped by DateFormatError for text that is
// not exactly eight digits.
var errNotCompactDate = errors.New("expected 8 digits in YYYYMMDD form")

// VoucherOf returns the voucher number carried by a voucher-scoped error,
// or "" when err is not one of them.
func VoucherOf(err error) string {
	var missing *MissingFieldError
	if errors.As(err, &missing) {
		return missing.Voucher
	}

	var date *DateFormatError
	if errors.As(err, &date) {
		return date.Voucher
	}

	var amount *AmountFormatError
	if errors.As(err, &amount) {
		return amount.Voucher
	}

	return ""
}
