package reference

// Candidate represents one metadata record returned by a provider for a query.
// Records without a title are discarded before scoring.
type Candidate struct {
	Title   string   `json:"title"`
	Authors []string `json:"authors,omitempty"` // Ordered author name strings
	Year    int      `json:"year,omitempty"`    // 0 if unknown
	Venue   string   `json:"venue,omitempty"`
	DOI     string   `json:"doi,omitempty"`
	ArXivID string   `json:"arxiv_id,omitempty"`
	URL     string   `json:"url,omitempty"`

	// Provider is the name of the source that returned this record.
	Provider string `json:"provider,omitempty"`

	// Rank is the provider-supplied result position (1-based).
	// 0 means the provider did not rank its results.
	Rank int `json:"rank,omitempty"`
}

// FirstAuthor returns the first author name, or "" if none.
func (c Candidate) FirstAuthor() string {
	if len(c.Authors) == 0 {
		return ""
	}
	return c.Authors[0]
}

// FirstAuthor returns the first author name, or "" if none.
func (c Claim) FirstAuthor() string {
	if len(c.Authors) == 0 {
		return ""
	}
	return c.Authors[0]
}
