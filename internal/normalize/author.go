package normalize

import (
	"strings"
)

// AuthorForms holds the two canonical spellings of an author name used for
// comparison. Citations commonly abbreviate given names, so "Nal
// Kalchbrenner" must be comparable against "N. Kalchbrenner".
type AuthorForms struct {
	Full    string // "nal kalchbrenner"
	Initial string // "n. kalchbrenner"
}

// Author normalizes an author name into its full and initial comparison
// forms. Handles "Last, First" ordering, honorifics, suffixes (Jr, III,
// PhD), bibliography markers like "[3]", and diacritics.
//
// Known limitations (shared with the provider mappers): multi-part surnames
// such as "van der Waals" keep only the final token as the family name.
func Author(name string) AuthorForms {
	name = refNumberPattern.ReplaceAllString(strings.TrimSpace(name), "")
	name = stripMarkup(name)
	name = foldDiacritics(name)

	given, family := splitName(name)
	given = strings.ToLower(strings.TrimSpace(given))
	family = strings.ToLower(strings.TrimSpace(family))

	forms := AuthorForms{}
	switch {
	case given == "" && family == "":
		return forms
	case given == "":
		forms.Full = family
		forms.Initial = family
		return forms
	}

	forms.Full = given + " " + family
	forms.Initial = initialOf(given) + ". " + family
	return forms
}

// splitName splits a name into given and family parts, honoring
// "Family, Given" ordering and keeping recognized suffixes with the family
// name out of the comparison forms entirely.
func splitName(name string) (given, family string) {
	if idx := strings.Index(name, ","); idx >= 0 {
		// "Luong, Minh-Thang" — but guard against "Smith, Jr."
		left := strings.TrimSpace(name[:idx])
		right := strings.TrimSpace(name[idx+1:])
		if nameSuffixes[strings.ToLower(right)] {
			name = left
		} else {
			return right, left
		}
	}

	parts := strings.Fields(name)

	// Drop honorifics from the front and suffixes from the back.
	for len(parts) > 1 && honorifics[strings.ToLower(parts[0])] {
		parts = parts[1:]
	}
	for len(parts) > 1 && nameSuffixes[strings.ToLower(parts[len(parts)-1])] {
		parts = parts[:len(parts)-1]
	}

	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return "", parts[0]
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}

// initialOf returns the first letter of a given-name string. The input is
// already lowercase. Initial forms are single-letter so that "m. luong"
// never spuriously equals "t. luong".
func initialOf(given string) string {
	// Already-abbreviated forms like "n." collapse to their letter.
	for _, r := range given {
		return string(r)
	}
	return ""
}
