// Package naming derives the name forms used in generated file names and
// template placeholders from a free-form user-supplied name.
package naming

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// Words splits input into its alphanumeric words. Any run of characters
// outside ASCII letters and digits is a boundary.
func Words(input string) []string {
	return strings.FieldsFunc(input, func(r rune) bool {
		return !isAlnum(r)
	})
}

// TitleCase upper-cases the first letter of every word and joins the words.
// The remaining letters keep their case, so "homePage" becomes "HomePage"
// and "home_detail" becomes "HomeDetail".
func TitleCase(input string) string {
	var b strings.Builder
	for _, w := range Words(input) {
		b.WriteString(upper.String(w[:1]))
		b.WriteString(w[1:])
	}
	return b.String()
}

// SnakeCase lower-cases every word, splitting camel humps, and joins the
// parts with underscores: "HomePage" becomes "home_page".
func SnakeCase(input string) string {
	words := Words(input)
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, splitHumps(w))
	}
	return strings.Join(parts, "_")
}

// splitHumps inserts an underscore wherever a lower-case letter or digit is
// followed by an upper-case letter, then lower-cases the word.
func splitHumps(word string) string {
	var b strings.Builder
	b.Grow(len(word) + 4)
	for i := 0; i < len(word); i++ {
		c := word[i]
		if i > 0 && isUpper(c) {
			prev := word[i-1]
			if isLower(prev) || isDigit(prev) {
				b.WriteByte('_')
			}
		}
		if isUpper(c) {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isAlnum(r rune) bool {
	return r < 0x80 && (isLower(byte(r)) || isUpper(byte(r)) || isDigit(byte(r)))
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
