package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// phoneDigits is the shape of a phone number once its separators are removed:
// a two digit area code followed by an 8 or 9 digit subscriber number.
var phoneDigits = regexp.MustCompile(`^\d{10,11}$`)

// phoneSeparators are the characters tolerated between digits.
const phoneSeparators = " .-()"

// PhoneNumber is an immutable, validated phone number. The zero value is not a
// valid phone number; use NewPhoneNumber to construct one.
type PhoneNumber struct {
	value string
	ddd   string
}

// NewPhoneNumber parses raw and returns the normalized PhoneNumber.
//
// raw may contain digits, spaces, dots, hyphens and one pair of parentheses
// around the area code, in any arrangement, e.g. "(11) 99999-9999",
// "11 9 9999-9999" or "1133334444". Once the separators are stripped exactly
// 10 or 11 digits must remain; the DDD (area code) is the first two.
// Returns ErrInvalidPhoneNumber otherwise.
func NewPhoneNumber(raw string) (PhoneNumber, error) {
	var digits strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case strings.ContainsRune(phoneSeparators, r):
		default:
			return PhoneNumber{}, ErrInvalidPhoneNumber
		}
	}

	value := digits.String()
	if !phoneDigits.MatchString(value) || !validParentheses(raw) {
		return PhoneNumber{}, ErrInvalidPhoneNumber
	}

	return PhoneNumber{
		value: value,
		ddd:   value[:2],
	}, nil
}

// validParentheses reports whether raw has no parentheses, or exactly one
// pair enclosing the area code and nothing else: no digits before "(" and
// exactly two digits between "(" and ")".
func validParentheses(raw string) bool {
	open, closing := strings.Count(raw, "("), strings.Count(raw, ")")
	if open == 0 && closing == 0 {
		return true
	}
	if open != 1 || closing != 1 {
		return false
	}

	start, end := strings.IndexByte(raw, '('), strings.IndexByte(raw, ')')
	if end < start || strings.ContainsAny(raw[:start], "0123456789") {
		return false
	}

	inner := strings.Trim(raw[start+1:end], " ")
	return len(inner) == 2 && inner[0] >= '0' && inner[0] <= '9' && inner[1] >= '0' && inner[1] <= '9'
}

// MustPhoneNumber is like NewPhoneNumber but panics on invalid input.
// It is intended for fixtures and constants.
func MustPhoneNumber(raw string) PhoneNumber {
	p, err := NewPhoneNumber(raw)
	if err != nil {
		// ALLOW-PANIC: fixture helper
		panic(fmt.Sprintf("domain: invalid phone number %q", raw))
	}
	return p
}

// Value returns the digits-only representation of the number.
func (p PhoneNumber) Value() string {
	return p.value
}

// DDD returns the two-digit area code.
func (p PhoneNumber) DDD() string {
	return p.ddd
}

// IsZero reports whether p is the zero value.
func (p PhoneNumber) IsZero() bool {
	return p.value == ""
}

// Equal reports whether two phone numbers have the same normalized value.
func (p PhoneNumber) Equal(other PhoneNumber) bool {
	return p.value == other.value
}

// String returns the display form, e.g. "(11) 99999-9999" or "(11) 3333-3333".
func (p PhoneNumber) String() string {
	if p.IsZero() {
		return ""
	}
	local := p.value[2:]
	split := len(local) - 4
	return fmt.Sprintf("(%s) %s-%s", p.ddd, local[:split], local[split:])
}

// MarshalText encodes the phone number as its normalized value.
func (p PhoneNumber) MarshalText() ([]byte, error) {
	return []byte(p.value), nil
}

// UnmarshalText parses and validates text, so a decoded PhoneNumber is always valid.
func (p *PhoneNumber) UnmarshalText(text []byte) error {
	parsed, err := NewPhoneNumber(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
