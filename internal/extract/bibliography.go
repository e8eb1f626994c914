// Package extract parses bibliography entries out of plain text and PDF
// files. Extraction is heuristic: fields it cannot identify are left
// empty and the raw entry text is always preserved for downstream
// matching.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/LyzardKing/refchecker/internal/normalize"
	"github.com/LyzardKing/refchecker/internal/reference"
)

var (
	// entryMarkerPattern matches numbered bibliography markers at line
	// start: "[12]", "12.", "12)".
	entryMarkerPattern = regexp.MustCompile(`^\s*(\[\d+\]|\d+[.)])\s+`)

	doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

	arxivPattern = regexp.MustCompile(`(?i)(?:arxiv:\s*|arxiv\.org/(?:abs|pdf)/)(\d{4}\.\d{4,5}|[a-z-]+(?:\.[A-Z]{2})?/\d{7})(?:v\d+)?`)

	urlPattern = regexp.MustCompile(`https?://[^\s<>"]+`)

	yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	quotedTitlePattern = regexp.MustCompile(`[“"]([^”"]{10,})[”"]`)
)

// Entries parses bibliography text into claims. Entries are delimited by
// numbered markers when present, otherwise by blank lines.
func Entries(text string) []reference.Claim {
	var claims []reference.Claim
	for _, raw := range splitEntries(text) {
		claims = append(claims, parseEntry(raw))
	}
	return claims
}

func splitEntries(text string) []string {
	lines := strings.Split(text, "\n")

	numbered := false
	for _, line := range lines {
		if entryMarkerPattern.MatchString(line) {
			numbered = true
			break
		}
	}

	var entries []string
	var current []string
	flush := func() {
		joined := normalize.CollapseSpace(strings.Join(current, " "))
		if joined != "" {
			entries = append(entries, joined)
		}
		current = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if numbered {
			if entryMarkerPattern.MatchString(line) {
				flush()
			}
			if trimmed != "" {
				current = append(current, trimmed)
			}
			continue
		}
		if trimmed == "" {
			flush()
			continue
		}
		current = append(current, trimmed)
	}
	flush()
	return entries
}

func parseEntry(raw string) reference.Claim {
	claim := reference.Claim{RawText: raw}

	body := entryMarkerPattern.ReplaceAllString(raw, "")

	if m := arxivPattern.FindStringSubmatch(body); m != nil {
		claim.ArXivID = normalize.ArXivID(m[1])
	}
	if m := doiPattern.FindString(body); m != "" {
		claim.DOI = normalize.DOI(strings.TrimRight(m, ".,;:)"))
	}
	if m := urlPattern.FindString(body); m != "" {
		claim.URL = strings.TrimRight(m, ".,;:)")
	}
	if m := yearPattern.FindString(body); m != "" {
		claim.Year, _ = strconv.Atoi(m)
	}

	claim.Title, claim.Authors, claim.Venue = splitFields(body)
	return claim
}

// splitFields partitions an entry into authors, title, and venue. A quoted
// title is authoritative; otherwise the entry is split on sentence
// punctuation with the first segment treated as authors when it reads
// like a name list.
func splitFields(body string) (title string, authors []string, venue string) {
	if m := quotedTitlePattern.FindStringSubmatchIndex(body); m != nil {
		title = strings.TrimRight(body[m[2]:m[3]], ".,;: ")
		authors = parseAuthors(body[:m[0]])
		venue = parseVenue(body[m[1]:])
		return title, authors, venue
	}

	segments := splitSegments(body)
	if len(segments) == 0 {
		return "", nil, ""
	}

	i := 0
	if looksLikeAuthors(segments[0]) {
		authors = parseAuthors(segments[0])
		i = 1
	}
	if i < len(segments) {
		title = segments[i]
		i++
	}
	if i < len(segments) {
		venue = parseVenue(strings.Join(segments[i:], ". "))
	}
	return title, authors, venue
}

// splitSegments splits on ". " but keeps initials like "J. Smith" intact.
func splitSegments(body string) []string {
	var segments []string
	var b strings.Builder
	runes := []rune(body)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '.' && i+1 < len(runes) && runes[i+1] == ' ' {
			// A single letter before the period is an initial, not a
			// sentence boundary.
			if i >= 1 && isInitial(runes, i) {
				b.WriteRune(r)
				continue
			}
			seg := strings.TrimSpace(b.String())
			if seg != "" {
				segments = append(segments, seg)
			}
			b.Reset()
			i++ // skip the space
			continue
		}
		b.WriteRune(r)
	}
	if seg := strings.TrimSpace(b.String()); seg != "" {
		segments = append(segments, strings.TrimRight(seg, "."))
	}
	return segments
}

func isInitial(runes []rune, dot int) bool {
	if dot < 1 {
		return false
	}
	prev := runes[dot-1]
	if prev < 'A' || prev > 'Z' {
		return false
	}
	return dot < 2 || runes[dot-2] == ' ' || runes[dot-2] == '.' || runes[dot-2] == ',' || runes[dot-2] == '-'
}

// looksLikeAuthors reports whether a segment reads like a name list:
// comma- or and-separated short capitalized phrases.
func looksLikeAuthors(s string) bool {
	if strings.Contains(s, ",") || strings.Contains(s, " and ") || strings.Contains(s, "&") {
		return true
	}
	// A single author: at most four words, all starting uppercase.
	words := strings.Fields(s)
	if len(words) == 0 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		r := []rune(w)[0]
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

var etAlPattern = regexp.MustCompile(`(?i),?\s*et\.?\s+al\.?`)

func parseAuthors(s string) []string {
	s = etAlPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " and ", ",")
	s = strings.ReplaceAll(s, "&", ",")

	var authors []string
	parts := strings.Split(s, ",")
	for i := 0; i < len(parts); i++ {
		name := strings.TrimSpace(parts[i])
		if name == "" {
			continue
		}
		// "Last, F." style: rejoin the surname with its initials.
		if i+1 < len(parts) && isInitialsOnly(strings.TrimSpace(parts[i+1])) {
			name = name + ", " + strings.TrimSpace(parts[i+1])
			i++
		}
		authors = append(authors, strings.Trim(name, ". "))
	}
	return authors
}

var initialsOnlyPattern = regexp.MustCompile(`^(?:[A-Z]\.?\s*)+$`)

func isInitialsOnly(s string) bool {
	return initialsOnlyPattern.MatchString(s)
}

var (
	leadingInPattern = regexp.MustCompile(`^[Ii]n[: ]\s*`)

	// pagesTailPattern matches page ranges left behind after year removal.
	pagesTailPattern = regexp.MustCompile(`,?\s*\b(pp\.?|pages)\s*[\d–-]*$`)
)

// parseVenue strips identifiers, URLs, page numbers, and the year from
// trailing entry text to leave the venue name.
func parseVenue(s string) string {
	s = urlPattern.ReplaceAllString(s, "")
	s = doiPattern.ReplaceAllString(s, "")
	s = arxivPattern.ReplaceAllString(s, "")
	s = yearPattern.ReplaceAllString(s, "")
	s = leadingInPattern.ReplaceAllString(strings.TrimSpace(s), "")
	s = strings.Trim(normalize.CollapseSpace(s), ".,;:() ")
	s = pagesTailPattern.ReplaceAllString(s, "")
	return strings.Trim(s, ".,;:() ")
}
