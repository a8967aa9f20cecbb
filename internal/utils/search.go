package utils

import "strings"

// SanitizeSearchTerm strips every character that is not an ASCII letter,
// digit or space before the term is turned into a LIKE pattern.
func SanitizeSearchTerm(term string) string {
	var b strings.Builder

	for _, r := range term {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == ' ':
			b.WriteRune(r)
		}
	}

	return b.String()
}
