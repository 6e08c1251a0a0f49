package bot

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lowercaser folds case for Ukrainian text; it handles the Cyrillic range
// and falls through to standard Unicode lowering for everything else.
var lowercaser = cases.Lower(language.Ukrainian)

// Normalize canonicalizes raw user input for matching: Unicode lower-casing,
// punctuation removal (everything that is not a letter, digit or whitespace),
// then whitespace collapse and trim. The result of a second application is
// always identical to the first.
func Normalize(text string) string {
	text = lowercaser.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
