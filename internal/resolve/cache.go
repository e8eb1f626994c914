package resolve

import (
	"strings"
	"sync"

	"github.com/LyzardKing/refchecker/internal/normalize"
	"github.com/LyzardKing/refchecker/internal/reference"
)

// queryCache memoizes provider responses keyed by provider name and the
// normalized query, so identical titles across a bibliography are fetched
// once. Cached slices are treated as immutable.
type queryCache struct {
	mu      sync.RWMutex
	entries map[string][]reference.Candidate
}

func newQueryCache() *queryCache {
	return &queryCache{entries: make(map[string][]reference.Candidate)}
}

// key canonicalizes a request so that formatting variants of the same
// query share a cache entry.
func (c *queryCache) key(provider string, req Request) string {
	var kind, value string
	switch {
	case req.DOI != "":
		kind, value = "doi", normalize.DOI(req.DOI)
	case req.ArXivID != "":
		kind, value = "arxiv", normalize.ArXivID(req.ArXivID)
	default:
		kind, value = "title", normalize.Title(req.Title)
	}
	return strings.Join([]string{provider, kind, value}, "\x00")
}

func (c *queryCache) get(provider string, req Request) ([]reference.Candidate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cands, ok := c.entries[c.key(provider, req)]
	return cands, ok
}

func (c *queryCache) put(provider string, req Request, cands []reference.Candidate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(provider, req)] = cands
}
