// Package stringutil provides common string manipulation utilities.
package stringutil

import "strings"

// IsNumeric checks if a string contains only digits.
// Returns false for empty strings.
func IsNumeric(s string) bool {
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

// IsASCIIAlpha checks if a string contains only ASCII letters.
// Returns false for empty strings.
func IsASCIIAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// StripDelims removes common romanization delimiters (apostrophe, hyphen,
// underscore, whitespace) so "zheng'xin-lou" compares equal to "zhengxinlou".
func StripDelims(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\'', '-', '_', ' ', '\t':
			return -1
		}
		return r
	}, s)
}

// FirstDigitRun returns the first maximal run of ASCII digits in s,
// or the empty string when s contains no digit.
func FirstDigitRun(s string) string {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}
	return ""
}
