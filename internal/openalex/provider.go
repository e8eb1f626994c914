package openalex

import (
	"context"
	"errors"

	"github.com/LyzardKing/refchecker/internal/normalize"
	"github.com/LyzardKing/refchecker/internal/reference"
	"github.com/LyzardKing/refchecker/internal/resolve"
)

// ProviderName identifies this source in reports.
const ProviderName = "openalex"

// Provider adapts the OpenAlex client to the resolver's query interface.
// OpenAlex does not index works by arXiv ID, so arXiv queries return no
// candidates and the resolver falls through to its title query.
type Provider struct {
	client *Client
}

// NewProvider wraps a client as a resolver provider.
func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

// Name implements resolve.Provider.
func (p *Provider) Name() string { return ProviderName }

// Query implements resolve.Provider.
func (p *Provider) Query(ctx context.Context, req resolve.Request) ([]reference.Candidate, error) {
	switch {
	case req.DOI != "":
		work, err := p.client.WorkByDOI(ctx, normalize.DOI(req.DOI))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return []reference.Candidate{MapWork(*work, 0)}, nil
	case req.Title != "":
		works, err := p.client.SearchWorks(ctx, normalize.Title(req.Title))
		if err != nil {
			return nil, err
		}
		candidates := make([]reference.Candidate, 0, len(works))
		for i, work := range works {
			candidates = append(candidates, MapWork(work, i+1))
		}
		return candidates, nil
	}
	return nil, nil
}

// MapWork converts an API work to a candidate record.
func MapWork(work Work, rank int) reference.Candidate {
	title := work.Title
	if title == "" {
		title = work.DisplayName
	}

	authors := make([]string, 0, len(work.Authorships))
	for _, a := range work.Authorships {
		if a.Author.DisplayName != "" {
			authors = append(authors, a.Author.DisplayName)
		}
	}

	cand := reference.Candidate{
		Title:    title,
		Authors:  authors,
		Year:     work.PublicationYear,
		DOI:      normalize.DOI(work.DOI),
		Provider: ProviderName,
		Rank:     rank,
	}
	if work.PrimaryLocation != nil {
		cand.URL = work.PrimaryLocation.LandingPageURL
		if work.PrimaryLocation.Source != nil {
			cand.Venue = work.PrimaryLocation.Source.DisplayName
		}
	}
	return cand
}
