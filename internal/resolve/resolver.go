package resolve

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/LyzardKing/refchecker/internal/match"
	"github.com/LyzardKing/refchecker/internal/reference"
)

// Status is the final outcome of resolving one claim.
type Status string

const (
	Resolved   Status = "resolved"
	Unresolved Status = "unresolved"
)

// Resolution is the per-claim outcome after trying providers in priority
// order. Immutable once produced.
type Resolution struct {
	Claim reference.Claim `json:"claim"`

	// Match is the winning result when Status is Resolved. For an
	// unresolved claim it holds the most recent ambiguous result, if any
	// provider produced one, for diagnostic purposes.
	Match *match.Result `json:"match,omitempty"`

	// Attempted lists provider names in the order they were tried.
	Attempted []string `json:"attempted"`

	Status Status `json:"status"`
}

// Resolver queries providers in priority order and arbitrates their
// candidates through the matcher. It is safe for concurrent use.
type Resolver struct {
	providers []Provider
	matcher   *match.Matcher
	timeout   time.Duration
	cache     *queryCache
	logger    *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTimeout sets a per-query timeout applied at the provider boundary.
// A timed-out query is treated like a failed one.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.timeout = d
	}
}

// WithLogger sets the logger used for provider failure diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Resolver that tries providers strictly in the given order.
func New(providers []Provider, matcher *match.Matcher, opts ...Option) *Resolver {
	r := &Resolver{
		providers: providers,
		matcher:   matcher,
		cache:     newQueryCache(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve finds the canonical record for one claim. It stops at the first
// provider that produces a decisive match; an ambiguous result falls
// through to the next provider, which may disambiguate. Provider failures
// never abort resolution.
func (r *Resolver) Resolve(ctx context.Context, claim reference.Claim) Resolution {
	plan := queryPlan(claim)

	res := Resolution{Claim: claim, Status: Unresolved, Attempted: []string{}}
	for _, p := range r.providers {
		res.Attempted = append(res.Attempted, p.Name())

		outcome := r.resolveProvider(ctx, p, claim, plan)
		switch outcome.Decision {
		case match.Matched:
			res.Match = &outcome
			res.Status = Resolved
			return res
		case match.Ambiguous:
			// Keep the most recent ambiguous result as a diagnostic;
			// a later provider may still disambiguate.
			res.Match = &outcome
		}
	}
	return res
}

// resolveProvider runs the claim's query plan against a single provider,
// stopping at the first query whose candidates produce a decision other
// than not-found.
func (r *Resolver) resolveProvider(ctx context.Context, p Provider, claim reference.Claim, plan []Request) match.Result {
	for _, req := range plan {
		candidates := r.query(ctx, p, req)
		if len(candidates) == 0 {
			continue
		}
		outcome := r.matcher.Match(claim, candidates)
		if outcome.Decision != match.NotFound {
			return outcome
		}
	}
	return match.Result{Decision: match.NotFound}
}

// query fetches candidates through the cache, applying the per-query
// timeout. Failures are logged and reported as an empty candidate list.
func (r *Resolver) query(ctx context.Context, p Provider, req Request) []reference.Candidate {
	if cands, ok := r.cache.get(p.Name(), req); ok {
		return cands
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cands, err := p.Query(ctx, req)
	if err != nil {
		r.logger.Debug("provider query failed",
			"provider", p.Name(),
			"error", err)
		return nil
	}

	for i := range cands {
		if cands[i].Provider == "" {
			cands[i].Provider = p.Name()
		}
	}
	r.cache.put(p.Name(), req, cands)
	return cands
}

// ResolveAll resolves every claim using up to workers concurrent
// goroutines. References are independent, so completion order is
// arbitrary; results are written back by index so the returned slice
// matches the input order.
func (r *Resolver) ResolveAll(ctx context.Context, claims []reference.Claim, workers int) []Resolution {
	results := make([]Resolution, len(claims))
	if len(claims) == 0 {
		return results
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(claims) {
		workers = len(claims)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.Resolve(ctx, claims[i])
			}
		}()
	}

	for i := range claims {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
