package catalog

import "strings"

// NormalizeDigits folds Persian and Arabic-Indic digits to ASCII so numeric
// product-code queries typed with either keyboard layout match.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '۰' && r <= '۹': // Persian
			return '0' + (r - '۰')
		case r >= '٠' && r <= '٩': // Arabic-Indic
			return '0' + (r - '٠')
		}
		return r
	}, s)
}

// IsNumericQuery reports whether a (digit-normalized) query is all digits,
// which routes product search to code lookup instead of name lookup.
func IsNumericQuery(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
