package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/LyzardKing/refchecker/internal/reference"
)

// referencesHeadingPattern matches the start of a bibliography section.
var referencesHeadingPattern = regexp.MustCompile(`(?im)^\s*(references|bibliography|works cited)\s*$`)

// followingHeadingPattern matches sections that commonly follow the
// bibliography, used to stop extraction.
var followingHeadingPattern = regexp.MustCompile(`(?im)^\s*(appendix|appendices|acknowledg(e)?ments|supplementary material)\b`)

// FromPDF extracts bibliography claims from a PDF file. It locates the
// references section in the extracted text and parses its entries.
func FromPDF(filePath string) ([]reference.Claim, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var builder strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	section := referencesSection(builder.String())
	if section == "" {
		return nil, fmt.Errorf("no references section found in %s", filePath)
	}
	return Entries(section), nil
}

// referencesSection returns the text between the last references heading
// and the next trailing section, or "" when no heading is present.
func referencesSection(text string) string {
	locs := referencesHeadingPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return ""
	}
	// A table of contents can mention "References" early; the real
	// section is the last occurrence.
	start := locs[len(locs)-1][1]
	section := text[start:]

	if loc := followingHeadingPattern.FindStringIndex(section); loc != nil {
		section = section[:loc[0]]
	}
	return strings.TrimSpace(section)
}
