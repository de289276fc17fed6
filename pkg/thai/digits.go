// Package thai provides locale helpers for Thai documents: digit
// normalization between Thai and ASCII numerals, and rendering of baht
// amounts as cheque-style Thai text.
package thai

import "strings"

const (
	thaiZero = '๐' // U+0E50
	thaiNine = '๙' // U+0E59
)

// ToASCIIDigits maps the ten Thai digit glyphs ๐-๙ one-to-one to ASCII 0-9.
// Every other rune passes through unchanged. All persisted and exported
// numeric-looking strings go through this so the canonical digit system is
// always ASCII, regardless of the input method the operator used.
func ToASCIIDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= thaiZero && r <= thaiNine {
			return '0' + (r - thaiZero)
		}
		return r
	}, s)
}

// ToThaiDigits is the display-direction inverse of ToASCIIDigits.
func ToThaiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return thaiZero + (r - '0')
		}
		return r
	}, s)
}
