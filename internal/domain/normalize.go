package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var germanLower = cases.Lower(language.German)

// NormalizeText prepares text for answer comparison:
//   - composes Unicode to NFC, so "u" + combining diaeresis equals "ü"
//   - lowercases with German rules
//   - trims and compresses inner whitespace to single spaces
//
// Umlauts and ß are preserved.
func NormalizeText(text string) string {
	text = TidyText(text)
	if text == "" {
		return ""
	}
	return germanLower.String(text)
}

// TidyText composes the text to NFC, trims it and collapses whitespace runs
// into single spaces. Case is kept.
func TidyText(text string) string {
	fields := strings.Fields(norm.NFC.String(text))
	return strings.Join(fields, " ")
}
