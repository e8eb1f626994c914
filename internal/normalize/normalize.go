// Package normalize canonicalizes titles, author names, venue strings, and
// identifiers for comparison. All functions are pure and idempotent:
// applying a normalizer to its own output returns the same string.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// latexCommandPattern matches TeX escape sequences like \'{e} or \textit.
	latexCommandPattern = regexp.MustCompile(`\\[a-zA-Z]+`)

	whitespacePattern = regexp.MustCompile(`\s+`)

	// venueNoisePattern matches leading boilerplate like "Proceedings of the
	// 32nd" or "Proc. of" that varies between citation styles.
	venueNoisePattern = regexp.MustCompile(`^(proceedings?|proc\.?)\s+(of\s+)?(the\s+)?(\d+(st|nd|rd|th)\s+)?`)

	// venueParenPattern matches trailing parentheticals such as "(2017)" or
	// "(NeurIPS)" acronym expansions.
	venueParenPattern = regexp.MustCompile(`\s*\([^)]*\)`)

	venueVolumePattern = regexp.MustCompile(`,?\s*\b(vol\.?|volume|no\.?|number|pp\.?|pages)\s+\S+`)

	// refNumberPattern matches leading bibliography markers like "[12]".
	refNumberPattern = regexp.MustCompile(`^\[\d+\]\s*`)
)

// Honorifics stripped from the front of author names.
var honorifics = map[string]bool{
	"dr":    true,
	"dr.":   true,
	"prof":  true,
	"prof.": true,
	"mr":    true,
	"mr.":   true,
	"ms":    true,
	"ms.":   true,
	"mrs":   true,
	"mrs.":  true,
}

// Suffixes stripped from the end of author names for comparison.
var nameSuffixes = map[string]bool{
	"jr":    true,
	"jr.":   true,
	"sr":    true,
	"sr.":   true,
	"ii":    true,
	"iii":   true,
	"iv":    true,
	"phd":   true,
	"ph.d":  true,
	"ph.d.": true,
	"md":    true,
	"m.d":   true,
	"m.d.":  true,
}

// foldDiacritics decomposes Unicode characters and drops combining marks,
// so "Schütze" folds to "Schutze".
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// stripMarkup removes LaTeX artifacts: escape sequences, braces, math
// delimiters, and non-breaking ties.
func stripMarkup(s string) string {
	s = latexCommandPattern.ReplaceAllString(s, "")
	s = strings.NewReplacer("{", "", "}", "", "$", "", "~", " ").Replace(s)
	return s
}

// CollapseSpace trims a string and folds runs of whitespace, including
// newlines from XML or PDF text, into single spaces.
func CollapseSpace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// Title normalizes a paper title for comparison: markup stripped, diacritics
// folded, lowercased, whitespace collapsed, terminal punctuation removed.
func Title(s string) string {
	s = stripMarkup(s)
	s = foldDiacritics(s)
	s = strings.ToLower(s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".,;:!?")
	return strings.TrimSpace(s)
}

// Venue normalizes a venue string: same folding as titles, plus removal of
// edition/volume noise tokens that vary between citation styles.
func Venue(s string) string {
	s = stripMarkup(s)
	s = foldDiacritics(s)
	s = strings.ToLower(s)
	s = venueParenPattern.ReplaceAllString(s, "")
	s = venueVolumePattern.ReplaceAllString(s, "")
	s = venueNoisePattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".,;:")
	return strings.TrimSpace(s)
}
