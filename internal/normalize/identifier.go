package normalize

import (
	"regexp"
	"strings"
)

var (
	arxivURLPattern = regexp.MustCompile(`arxiv\.org/(?:abs|pdf)/([^\s/?#]+?)(?:\.pdf)?$`)
	arxivIDPattern  = regexp.MustCompile(`^(?:arxiv:)?(\d{4}\.\d{4,5}|[a-z-]+(?:\.[A-Za-z-]+)?/\d{7})(v\d+)?$`)
)

// DOI normalizes a DOI for comparison: URL and "doi:" prefixes removed,
// hash fragment stripped, lowercased.
func DOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "https://dx.doi.org/")
	doi = strings.TrimPrefix(doi, "http://dx.doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	if idx := strings.Index(doi, "#"); idx >= 0 {
		doi = doi[:idx]
	}
	doi = strings.ToLower(doi)
	doi = strings.TrimPrefix(doi, "doi:")
	return doi
}

// ArXivID normalizes an arXiv identifier: accepts bare IDs, "arXiv:"
// prefixes, and abs/pdf URLs, and strips the version suffix so that
// 1706.03762v5 compares equal to 1706.03762.
func ArXivID(id string) string {
	id = strings.TrimSpace(id)
	if m := arxivURLPattern.FindStringSubmatch(strings.ToLower(id)); m != nil {
		id = m[1]
	}
	id = strings.ToLower(id)
	if m := arxivIDPattern.FindStringSubmatch(id); m != nil {
		return m[1]
	}
	return id
}
