package phone

import (
	"strings"

	"bundlemart-api/internal/pkg/errs"
)

var ErrInvalidPhoneNumber = errs.New("invalid phone number")

// Normalize converts a Ghanaian mobile number to the local 10-digit form
// (0XXXXXXXXX). Accepts "+233", "233" and local prefixes, with spaces or
// dashes in between.
func Normalize(raw string) (string, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' || r == ' ' || r == '-':
			// separators and the leading plus are ignored
		default:
			return "", ErrInvalidPhoneNumber
		}
	}

	digits := b.String()
	if strings.HasPrefix(digits, "233") && len(digits) == 12 {
		digits = "0" + digits[3:]
	}

	if len(digits) != 10 || digits[0] != '0' {
		return "", ErrInvalidPhoneNumber
	}
	return digits, nil
}
