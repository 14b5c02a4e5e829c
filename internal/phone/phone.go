// Package phone validates and holds contact phone numbers.
package phone

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidFormat indicates a candidate is not exactly 10 ASCII digits.
var ErrInvalidFormat = errors.New("phone: number must be a string of 10 digits")

// tenDigits matches exactly 10 ASCII decimal digits and nothing else.
var tenDigits = regexp.MustCompile(`^[0-9]{10}$`)

// Phone is a validated phone number. The zero value is not a valid Phone;
// construct with New.
type Phone struct {
	value string
}

// Validate reports whether candidate is exactly 10 ASCII decimal digits.
func Validate(candidate string) bool {
	return tenDigits.MatchString(candidate)
}

// New returns a Phone for value, or an error wrapping ErrInvalidFormat.
func New(value string) (Phone, error) {
	if !Validate(value) {
		return Phone{}, fmt.Errorf("%w: %q", ErrInvalidFormat, value)
	}
	return Phone{value: value}, nil
}

// String returns the digits.
func (p Phone) String() string {
	return p.value
}
