package phone

import "strings"

// Normalize reduces a free-form phone string to digits and prefixes the
// country calling code when absent. Normalization is idempotent: feeding the
// output back in returns it unchanged.
//
// A leading match on the country code alone is not enough to consider the
// number prefixed — a local number may start with the same digits — so the
// total length must also exceed a bare local number (11 digits for BR).
func Normalize(raw, countryCode string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, countryCode) && len(digits) > 11 {
		return digits
	}
	return countryCode + digits
}
