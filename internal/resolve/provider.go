// Package resolve finds the canonical record for a reference claim by
// querying metadata providers in priority order.
package resolve

import (
	"context"

	"github.com/LyzardKing/refchecker/internal/reference"
)

// Request is one query to a metadata provider. Exactly one field is set;
// identifier queries are issued before free-text title queries because
// identifiers are unambiguous.
type Request struct {
	DOI     string
	ArXivID string
	Title   string
}

// Provider is the query capability implemented by each metadata source.
// Implementations perform the only blocking I/O in the pipeline and must
// honor context cancellation.
type Provider interface {
	// Name identifies the source in reports and diagnostics.
	Name() string

	// Query returns zero or more candidate records for the request.
	// Returning an error is equivalent to returning no candidates: the
	// resolver logs it and moves on.
	Query(ctx context.Context, req Request) ([]reference.Candidate, error)
}

// queryPlan builds the ordered request list for a claim: DOI, then arXiv
// ID, then title. Claims with no usable field produce an empty plan.
func queryPlan(claim reference.Claim) []Request {
	var plan []Request
	if claim.DOI != "" {
		plan = append(plan, Request{DOI: claim.DOI})
	}
	if claim.ArXivID != "" {
		plan = append(plan, Request{ArXivID: claim.ArXivID})
	}
	title := claim.Title
	if title == "" {
		title = claim.RawText
	}
	if title != "" {
		plan = append(plan, Request{Title: title})
	}
	return plan
}
