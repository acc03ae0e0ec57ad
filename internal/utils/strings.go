package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TrimmedLen counts characters (not bytes) after trimming, so "José" has length 4.
func TrimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// StripSpaces removes every whitespace rune ("4111 1111" -> "41111111").
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// IsDigits reports whether s is non-empty and made of ASCII digits only.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// GroupCardNumber renders a card number in blocks of four ("4111 1111 1111 1111").
func GroupCardNumber(number string) string {
	number = StripSpaces(number)
	var out strings.Builder
	for i, r := range number {
		if i > 0 && i%4 == 0 {
			out.WriteByte(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

// MaskCardNumber keeps only the last four digits; used for logs.
func MaskCardNumber(number string) string {
	number = StripSpaces(number)
	if len(number) <= 4 {
		return strings.Repeat("*", len(number))
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
