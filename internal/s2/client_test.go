package s2

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LyzardKing/refchecker/internal/resolve"
)

const searchFixture = `{
	"total": 2,
	"offset": 0,
	"data": [
		{
			"paperId": "abc123",
			"title": "Attention Is All You Need",
			"year": 2017,
			"venue": "NeurIPS",
			"authors": [{"authorId": "1", "name": "Ashish Vaswani"}],
			"externalIds": {"DOI": "10.5555/3295222", "ArXiv": "1706.03762"}
		},
		{
			"paperId": "def456",
			"title": "Attention and Memory in Deep Learning",
			"year": 2016,
			"authors": [{"name": "Someone Else"}]
		}
	]
}`

func TestSearchPapers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/paper/search" {
			t.Errorf("path = %q, want /paper/search", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got == "" {
			t.Error("missing query parameter")
		}
		w.Write([]byte(searchFixture))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	papers, err := c.SearchPapers(context.Background(), "attention is all you need")
	if err != nil {
		t.Fatalf("SearchPapers: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("got %d papers, want 2", len(papers))
	}
	if papers[0].ExternalIDs.ArXiv != "1706.03762" {
		t.Errorf("ArXiv ID = %q, want 1706.03762", papers[0].ExternalIDs.ArXiv)
	}
}

func TestPaperByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "paper not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	_, err := c.PaperByID(context.Background(), "DOI:10.1/missing")
	if !IsNotFound(err) {
		t.Errorf("err = %v, want not-found", err)
	}
}

func TestPaperByIDAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	_, err := c.PaperByID(context.Background(), "DOI:10.1/x")
	if !errors.Is(err, ErrAuthError) {
		t.Errorf("err = %v, want ErrAuthError", err)
	}
}

func TestProviderQueryByDOI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/paper/DOI:10.5555%2F3295222" && r.URL.Path != "/paper/DOI:10.5555/3295222" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"paperId": "abc123",
			"title": "Attention Is All You Need",
			"year": 2017,
			"authors": [{"name": "Ashish Vaswani"}],
			"externalIds": {"DOI": "10.5555/3295222", "ArXiv": "1706.03762"}
		}`))
	}))
	defer srv.Close()

	p := NewProvider(NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client())))
	cands, err := p.Query(context.Background(), resolve.Request{DOI: "https://doi.org/10.5555/3295222"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}
	cand := cands[0]
	if cand.Provider != ProviderName {
		t.Errorf("Provider = %q, want %q", cand.Provider, ProviderName)
	}
	if cand.URL != "https://arxiv.org/abs/1706.03762" {
		t.Errorf("URL = %q, want arXiv abstract URL", cand.URL)
	}
}

func TestProviderQueryNotFoundIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewProvider(NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client())))
	cands, err := p.Query(context.Background(), resolve.Request{DOI: "10.1/missing"})
	if err != nil {
		t.Fatalf("Query: %v (not-found must not be an error)", err)
	}
	if len(cands) != 0 {
		t.Errorf("got %d candidates, want 0", len(cands))
	}
}

func TestProviderSearchRanks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchFixture))
	}))
	defer srv.Close()

	p := NewProvider(NewClient(WithBaseURL(srv.URL), WithHTTPClient(srv.Client())))
	cands, err := p.Query(context.Background(), resolve.Request{Title: "Attention is all you need"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want 2", len(cands))
	}
	if cands[0].Rank != 1 || cands[1].Rank != 2 {
		t.Errorf("ranks = %d, %d, want 1, 2", cands[0].Rank, cands[1].Rank)
	}
}
