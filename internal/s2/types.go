// Package s2 provides a client for the Semantic Scholar Academic Graph API
// and exposes it as a metadata provider for reference resolution.
package s2

// Paper represents a paper from the Semantic Scholar API.
type Paper struct {
	PaperID       string      `json:"paperId"`
	ExternalIDs   ExternalIDs `json:"externalIds,omitempty"`
	Title         string      `json:"title"`
	Authors       []Author    `json:"authors,omitempty"`
	Year          int         `json:"year,omitempty"`
	Venue         string      `json:"venue,omitempty"`
	URL           string      `json:"url,omitempty"`
	OpenAccessPDF *OpenAccess `json:"openAccessPdf,omitempty"`
}

// ExternalIDs contains the external identifiers of a paper.
type ExternalIDs struct {
	DOI           string `json:"DOI,omitempty"`
	ArXiv         string `json:"ArXiv,omitempty"`
	PubMed        string `json:"PubMed,omitempty"`
	PubMedCentral string `json:"PubMedCentral,omitempty"`
	CorpusID      int    `json:"CorpusId,omitempty"`
}

// Author represents an author from the Semantic Scholar API.
type Author struct {
	AuthorID string `json:"authorId,omitempty"`
	Name     string `json:"name"`
}

// OpenAccess holds the open-access PDF location of a paper.
type OpenAccess struct {
	URL string `json:"url,omitempty"`
}

// SearchResponse is the response from the paper search endpoint.
type SearchResponse struct {
	Total  int     `json:"total"`
	Offset int     `json:"offset"`
	Next   int     `json:"next,omitempty"`
	Data   []Paper `json:"data"`
}
