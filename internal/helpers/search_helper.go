package helpers

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeText lowercases a string and strips diacritics, so that
// "Tecnología" and "tecnologia" compare equal. The same normalization
// is applied to the stored column and to incoming search terms.
func NormalizeText(text string) string {
	normalized, _, err := transform.String(stripAccents, text)
	if err != nil {
		normalized = text
	}
	return strings.ToLower(normalized)
}
