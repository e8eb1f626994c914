package resolve

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/LyzardKing/refchecker/internal/match"
	"github.com/LyzardKing/refchecker/internal/reference"
)

// fakeProvider is an in-memory Provider returning fixed candidates.
type fakeProvider struct {
	name       string
	candidates []reference.Candidate
	err        error
	calls      atomic.Int32
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Query(ctx context.Context, req Request) ([]reference.Candidate, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

func testClaim() reference.Claim {
	return reference.Claim{
		RawText: "Kalchbrenner et al. Neural machine translation in linear time. 2017.",
		Title:   "Neural machine translation in linear time",
		Authors: []string{"Nal Kalchbrenner"},
		Year:    2017,
	}
}

func exactCandidate() reference.Candidate {
	return reference.Candidate{
		Title:   "Neural Machine Translation in Linear Time",
		Authors: []string{"Nal Kalchbrenner"},
		Year:    2016,
	}
}

func newTestResolver(providers []Provider, opts ...Option) *Resolver {
	return New(providers, match.New(match.DefaultConfig()), opts...)
}

func TestResolveFirstProviderWins(t *testing.T) {
	first := &fakeProvider{name: "first", candidates: []reference.Candidate{exactCandidate()}}
	second := &fakeProvider{name: "second", candidates: []reference.Candidate{exactCandidate()}}
	r := newTestResolver([]Provider{first, second})

	res := r.Resolve(context.Background(), testClaim())
	if res.Status != Resolved {
		t.Fatalf("Status = %s, want %s", res.Status, Resolved)
	}
	if res.Match.Candidate.Provider != "first" {
		t.Errorf("winning provider = %q, want %q", res.Match.Candidate.Provider, "first")
	}
	if second.calls.Load() != 0 {
		t.Errorf("second provider queried %d times, want 0", second.calls.Load())
	}
	if len(res.Attempted) != 1 || res.Attempted[0] != "first" {
		t.Errorf("Attempted = %v, want [first]", res.Attempted)
	}
}

func TestResolveFallbackOnAmbiguous(t *testing.T) {
	// Two near-tied candidates: ambiguous.
	tied := []reference.Candidate{
		{Title: "Neural machine translation in linear time", Year: 2016},
		{Title: "Neural machine translation in linear times", Year: 2016},
	}
	ambiguous := &fakeProvider{name: "ambiguous", candidates: tied}
	decisive := &fakeProvider{name: "decisive", candidates: []reference.Candidate{exactCandidate()}}
	r := newTestResolver([]Provider{ambiguous, decisive})

	res := r.Resolve(context.Background(), testClaim())
	if res.Status != Resolved {
		t.Fatalf("Status = %s, want %s", res.Status, Resolved)
	}
	if res.Match.Candidate.Provider != "decisive" {
		t.Errorf("winning provider = %q, want %q (ambiguous result must not win)", res.Match.Candidate.Provider, "decisive")
	}
	if got := res.Attempted; len(got) != 2 {
		t.Errorf("Attempted = %v, want both providers", got)
	}
}

func TestResolveAmbiguousRetainedWhenUnresolved(t *testing.T) {
	tied := []reference.Candidate{
		{Title: "Neural machine translation in linear time", Year: 2016},
		{Title: "Neural machine translation in linear times", Year: 2016},
	}
	ambiguous := &fakeProvider{name: "ambiguous", candidates: tied}
	empty := &fakeProvider{name: "empty"}
	r := newTestResolver([]Provider{ambiguous, empty})

	res := r.Resolve(context.Background(), testClaim())
	if res.Status != Unresolved {
		t.Fatalf("Status = %s, want %s", res.Status, Unresolved)
	}
	if res.Match == nil || res.Match.Decision != match.Ambiguous {
		t.Errorf("ambiguous diagnostic not retained: %+v", res.Match)
	}
}

func TestResolveAllProvidersFail(t *testing.T) {
	failing := &fakeProvider{name: "a", err: errors.New("network down")}
	alsoFailing := &fakeProvider{name: "b", err: errors.New("timeout")}
	r := newTestResolver([]Provider{failing, alsoFailing})

	res := r.Resolve(context.Background(), testClaim())
	if res.Status != Unresolved {
		t.Fatalf("Status = %s, want %s", res.Status, Unresolved)
	}
	if res.Match != nil {
		t.Errorf("Match = %+v, want nil when every provider fails", res.Match)
	}
	if len(res.Attempted) != 2 {
		t.Errorf("Attempted = %v, want both providers recorded", res.Attempted)
	}
}

func TestResolveFailedProviderFallsThrough(t *testing.T) {
	failing := &fakeProvider{name: "failing", err: errors.New("unavailable")}
	working := &fakeProvider{name: "working", candidates: []reference.Candidate{exactCandidate()}}
	r := newTestResolver([]Provider{failing, working})

	res := r.Resolve(context.Background(), testClaim())
	if res.Status != Resolved {
		t.Fatalf("Status = %s, want %s despite first provider failing", res.Status, Resolved)
	}
	if res.Match.Candidate.Provider != "working" {
		t.Errorf("winning provider = %q, want %q", res.Match.Candidate.Provider, "working")
	}
}

func TestResolveNoCandidatesAnywhere(t *testing.T) {
	r := newTestResolver([]Provider{
		&fakeProvider{name: "a"},
		&fakeProvider{name: "b"},
	})

	res := r.Resolve(context.Background(), testClaim())
	if res.Status != Unresolved {
		t.Errorf("Status = %s, want %s", res.Status, Unresolved)
	}
	if res.Match != nil {
		t.Errorf("Match = %+v, want nil", res.Match)
	}
}

func TestResolveCachesIdenticalQueries(t *testing.T) {
	p := &fakeProvider{name: "p", candidates: []reference.Candidate{exactCandidate()}}
	r := newTestResolver([]Provider{p})

	claim := testClaim()
	claimCopy := claim

	r.Resolve(context.Background(), claim)
	first := p.calls.Load()
	r.Resolve(context.Background(), claimCopy)
	if p.calls.Load() != first {
		t.Errorf("identical claim re-queried the provider: %d calls, want %d", p.calls.Load(), first)
	}
}

func TestResolveAllPreservesOrder(t *testing.T) {
	// Each claim resolves against a distinct candidate so the output
	// position can be checked.
	titles := []string{
		"Attention is all you need",
		"Neural machine translation in linear time",
		"Deep residual learning for image recognition",
		"Generative adversarial networks",
	}
	var claims []reference.Claim
	var cands []reference.Candidate
	for _, title := range titles {
		claims = append(claims, reference.Claim{RawText: title, Title: title})
		cands = append(cands, reference.Candidate{Title: title})
	}
	p := &fakeProvider{name: "p", candidates: cands}
	r := newTestResolver([]Provider{p})

	results := r.ResolveAll(context.Background(), claims, 4)
	if len(results) != len(claims) {
		t.Fatalf("got %d results, want %d", len(results), len(claims))
	}
	for i, res := range results {
		if res.Claim.Title != titles[i] {
			t.Errorf("result %d is for %q, want %q (order not preserved)", i, res.Claim.Title, titles[i])
		}
	}
}

func TestResolveAllEmpty(t *testing.T) {
	r := newTestResolver([]Provider{&fakeProvider{name: "p"}})
	results := r.ResolveAll(context.Background(), nil, 4)
	if len(results) != 0 {
		t.Errorf("got %d results for empty input", len(results))
	}
}

func TestQueryPlanOrder(t *testing.T) {
	claim := reference.Claim{
		RawText: "raw",
		Title:   "Some title",
		DOI:     "10.1/x",
		ArXivID: "1706.03762",
	}
	plan := queryPlan(claim)
	if len(plan) != 3 {
		t.Fatalf("plan length = %d, want 3", len(plan))
	}
	if plan[0].DOI == "" || plan[1].ArXivID == "" || plan[2].Title == "" {
		t.Errorf("plan order wrong: %+v (identifiers must precede title)", plan)
	}
}

func TestQueryPlanRawTextFallback(t *testing.T) {
	claim := reference.Claim{RawText: "only raw text"}
	plan := queryPlan(claim)
	if len(plan) != 1 || plan[0].Title != "only raw text" {
		t.Errorf("plan = %+v, want single title query from raw text", plan)
	}
}
