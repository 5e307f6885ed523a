// Package validation holds the pure field validators for the onboarding
// record. Each validator takes a raw string and returns the normalized
// value or an error; none of them touch the record schema, so they can
// be exercised in isolation.
package validation

import (
	"errors"
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// PhonePattern matches an optional leading +, an optional literal 1,
	// then 9 to 15 digits. Applied after stripping separator characters.
	PhonePattern = `^\+?1?\d{9,15}$`

	// EmailPattern is the standard local-part@domain.tld shape with a
	// TLD of at least two characters.
	EmailPattern = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`

	// ZipcodePattern allows 3-10 alphanumeric, space or hyphen characters
	// so international postal codes pass.
	ZipcodePattern = `^[A-Za-z0-9\s-]{3,10}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Phone   *regexp.Regexp
	Email   *regexp.Regexp
	Zipcode *regexp.Regexp
}{
	Phone:   regexp.MustCompile(PhonePattern),
	Email:   regexp.MustCompile(EmailPattern),
	Zipcode: regexp.MustCompile(ZipcodePattern),
}

// Validation failure errors
var (
	ErrInvalidPhoneFormat   = errors.New("Phone number must be entered in the format: +1234567890 or 1234567890")
	ErrInvalidEmailFormat   = errors.New("Invalid email format")
	ErrInvalidZipcodeFormat = errors.New("Invalid zipcode format")
)

// Phone strips every character except digits and '+' from value and
// validates the result against PhonePattern. Returns the cleaned string.
func Phone(value string) (string, error) {
	if value == "" {
		return value, nil
	}

	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	if !CompiledPatterns.Phone.MatchString(cleaned) {
		return "", ErrInvalidPhoneFormat
	}
	return cleaned, nil
}

// Email validates value against EmailPattern and returns it unchanged.
func Email(value string) (string, error) {
	if value == "" {
		return value, nil
	}
	if !CompiledPatterns.Email.MatchString(value) {
		return "", ErrInvalidEmailFormat
	}
	return value, nil
}

// Zipcode validates value against ZipcodePattern and returns it unchanged.
func Zipcode(value string) (string, error) {
	if value == "" {
		return value, nil
	}
	if !CompiledPatterns.Zipcode.MatchString(value) {
		return "", ErrInvalidZipcodeFormat
	}
	return value, nil
}
