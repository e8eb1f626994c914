package s2

import (
	"context"
	"errors"

	"github.com/LyzardKing/refchecker/internal/normalize"
	"github.com/LyzardKing/refchecker/internal/reference"
	"github.com/LyzardKing/refchecker/internal/resolve"
)

// ProviderName identifies this source in reports.
const ProviderName = "semanticscholar"

// Provider adapts the Semantic Scholar client to the resolver's query
// interface.
type Provider struct {
	client *Client
}

// NewProvider wraps a client as a resolver provider.
func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

// Name implements resolve.Provider.
func (p *Provider) Name() string { return ProviderName }

// Query implements resolve.Provider. Identifier lookups return at most one
// candidate; a 404 is an empty result, not a failure.
func (p *Provider) Query(ctx context.Context, req resolve.Request) ([]reference.Candidate, error) {
	switch {
	case req.DOI != "":
		return p.lookup(ctx, "DOI:"+normalize.DOI(req.DOI))
	case req.ArXivID != "":
		return p.lookup(ctx, "ARXIV:"+normalize.ArXivID(req.ArXivID))
	case req.Title != "":
		return p.search(ctx, req.Title)
	}
	return nil, nil
}

func (p *Provider) lookup(ctx context.Context, id string) ([]reference.Candidate, error) {
	paper, err := p.client.PaperByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []reference.Candidate{MapPaper(*paper, 0)}, nil
}

func (p *Provider) search(ctx context.Context, title string) ([]reference.Candidate, error) {
	papers, err := p.client.SearchPapers(ctx, normalize.Title(title))
	if err != nil {
		return nil, err
	}
	candidates := make([]reference.Candidate, 0, len(papers))
	for i, paper := range papers {
		candidates = append(candidates, MapPaper(paper, i+1))
	}
	return candidates, nil
}
