package domain

import "strings"

// NormalizePhone strips formatting from a phone number and rewrites the
// Korean country prefix (82...) to its domestic form (0...). Returns
// ErrInvalidPhoneNumber unless the result is 10 or 11 digits.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "82") {
		digits = "0" + digits[2:]
	}
	if len(digits) < 10 || len(digits) > 11 {
		return "", ErrInvalidPhoneNumber
	}
	return digits, nil
}
