package s2

import (
	"github.com/LyzardKing/refchecker/internal/reference"
)

// MapPaper converts an API paper to a candidate record. rank is the
// 1-based result position for ranked search responses; pass 0 for direct
// identifier lookups.
func MapPaper(paper Paper, rank int) reference.Candidate {
	authors := make([]string, 0, len(paper.Authors))
	for _, a := range paper.Authors {
		if a.Name != "" {
			authors = append(authors, a.Name)
		}
	}

	return reference.Candidate{
		Title:    paper.Title,
		Authors:  authors,
		Year:     paper.Year,
		Venue:    paper.Venue,
		DOI:      paper.ExternalIDs.DOI,
		ArXivID:  paper.ExternalIDs.ArXiv,
		URL:      bestURL(paper),
		Provider: ProviderName,
		Rank:     rank,
	}
}

// bestURL picks the most canonical URL for a paper: the arXiv abstract
// page, then the open-access PDF, then the provider's own page, then a
// DOI URL.
func bestURL(paper Paper) string {
	if paper.ExternalIDs.ArXiv != "" {
		return "https://arxiv.org/abs/" + paper.ExternalIDs.ArXiv
	}
	if paper.OpenAccessPDF != nil && paper.OpenAccessPDF.URL != "" {
		return paper.OpenAccessPDF.URL
	}
	if paper.URL != "" {
		return paper.URL
	}
	if paper.ExternalIDs.DOI != "" {
		return "https://doi.org/" + paper.ExternalIDs.DOI
	}
	return ""
}
