// Package reference defines the core domain types for citation verification.
package reference

// Claim represents one bibliography entry as asserted by the paper under check.
// RawText is always present; every structured field is best-effort and may be
// empty when extraction failed for that field.
type Claim struct {
	RawText string   `json:"raw_text"`
	Title   string   `json:"title,omitempty"`
	Authors []string `json:"authors,omitempty"` // Ordered, as printed in the bibliography
	Year    int      `json:"year,omitempty"`    // 0 if unknown
	Venue   string   `json:"venue,omitempty"`   // Journal, conference, or preprint server
	URL     string   `json:"url,omitempty"`
	DOI     string   `json:"doi,omitempty"`
	ArXivID string   `json:"arxiv_id,omitempty"`
}

// HasIdentifier reports whether the claim carries any unambiguous identifier
// that can be looked up directly instead of searched by title.
func (c Claim) HasIdentifier() bool {
	return c.DOI != "" || c.ArXivID != ""
}
