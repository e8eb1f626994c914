// Package match scores candidate records against a reference claim and
// decides whether the best candidate wins decisively.
package match

import (
	"sort"

	"github.com/LyzardKing/refchecker/internal/normalize"
	"github.com/LyzardKing/refchecker/internal/reference"
)

// Decision classifies the outcome of matching a claim against one
// provider's candidates.
type Decision string

const (
	// Matched means the top candidate cleared the acceptance threshold
	// with a decisive margin over the runner-up.
	Matched Decision = "matched"

	// Ambiguous means candidates exist but none wins decisively: either
	// the top score is below acceptance or two candidates are near-tied.
	Ambiguous Decision = "ambiguous"

	// NotFound means there were no candidates, or all scored below the
	// floor threshold.
	NotFound Decision = "not_found"
)

// Config holds the matcher's weights and decision thresholds. Thresholds
// are policy, not constants: provider data density varies, so callers tune
// them through configuration.
type Config struct {
	TitleWeight  float64
	AuthorWeight float64
	YearWeight   float64

	// Floor is the minimum top score below which the result is NotFound.
	Floor float64

	// Accept is the minimum top score required for a Matched decision.
	Accept float64

	// Separation is the minimum margin between the top and runner-up
	// scores required for a Matched decision.
	Separation float64
}

// DefaultConfig returns the standard weights and thresholds.
func DefaultConfig() Config {
	return Config{
		TitleWeight:  0.5,
		AuthorWeight: 0.3,
		YearWeight:   0.2,
		Floor:        0.5,
		Accept:       0.6,
		Separation:   0.08,
	}
}

// FieldScores is the per-field similarity breakdown behind a composite score.
type FieldScores struct {
	Title  float64 `json:"title"`
	Author float64 `json:"author"`
	Year   float64 `json:"year"`
}

// Result is the outcome of matching one claim against one provider's
// candidate list.
type Result struct {
	// Candidate is the winning record. Nil unless Decision is Matched or
	// Ambiguous (for Ambiguous it holds the near-tied leader, kept for
	// diagnostics).
	Candidate *reference.Candidate `json:"candidate,omitempty"`

	// Score is the composite weighted similarity in [0,1].
	Score float64 `json:"score"`

	// Fields is the per-field breakdown for the winning candidate.
	Fields FieldScores `json:"fields"`

	Decision Decision `json:"decision"`
}

// Matcher ranks candidates by weighted field similarity. It is stateless
// and safe for concurrent use.
type Matcher struct {
	cfg Config
}

// New creates a Matcher with the given configuration.
func New(cfg Config) *Matcher {
	return &Matcher{cfg: cfg}
}

// scored pairs a candidate with its computed similarity.
type scored struct {
	candidate reference.Candidate
	score     float64
	fields    FieldScores
}

// Match scores every titled candidate against the claim and applies the
// decision policy. The same inputs always produce the same Result.
func (m *Matcher) Match(claim reference.Claim, candidates []reference.Candidate) Result {
	ranked := m.rank(claim, candidates)
	if len(ranked) == 0 {
		return Result{Decision: NotFound}
	}

	top := ranked[0]
	if top.score < m.cfg.Floor {
		return Result{Decision: NotFound}
	}

	var second float64
	if len(ranked) > 1 {
		second = ranked[1].score
	}

	result := Result{
		Candidate: &top.candidate,
		Score:     top.score,
		Fields:    top.fields,
	}
	if top.score < m.cfg.Accept || top.score-second < m.cfg.Separation {
		result.Decision = Ambiguous
	} else {
		result.Decision = Matched
	}
	return result
}

// rank scores candidates and sorts them best-first. The sort is stable, so
// exact ties keep the candidate list order; among equal scores a
// provider-supplied rank breaks the tie.
func (m *Matcher) rank(claim reference.Claim, candidates []reference.Candidate) []scored {
	titleW, authorW, yearW := m.weights(claim, candidates)

	// When extraction found no title, fall back to the raw entry text:
	// the token-order-insensitive ratio still rewards the right record.
	claimTitle := claim.Title
	if claimTitle == "" {
		claimTitle = claim.RawText
	}

	ranked := make([]scored, 0, len(candidates))
	for _, cand := range candidates {
		if cand.Title == "" {
			continue
		}
		fields := FieldScores{
			Title:  TitleSimilarity(claimTitle, cand.Title),
			Author: AuthorSimilarity(claim.Authors, cand.Authors),
			Year:   YearSimilarity(claim.Year, cand.Year),
		}
		score := titleW*fields.Title + authorW*fields.Author + yearW*fields.Year
		// An exact identifier agreement is unambiguous regardless of how
		// noisy the free-text fields are.
		if identifiersAgree(claim, cand) {
			score = 1
		}
		ranked = append(ranked, scored{
			candidate: cand,
			score:     score,
			fields:    fields,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		ri, rj := ranked[i].candidate.Rank, ranked[j].candidate.Rank
		if ri != 0 && rj != 0 && ri != rj {
			return ri < rj
		}
		return false
	})
	return ranked
}

// weights returns the effective field weights for this comparison. When
// author data is absent on the claim side, or on every candidate, the
// author weight is folded into the title weight (title-only matching).
func (m *Matcher) weights(claim reference.Claim, candidates []reference.Candidate) (title, author, year float64) {
	title, author, year = m.cfg.TitleWeight, m.cfg.AuthorWeight, m.cfg.YearWeight

	hasCandidateAuthors := false
	for _, cand := range candidates {
		if len(cand.Authors) > 0 {
			hasCandidateAuthors = true
			break
		}
	}
	if len(claim.Authors) == 0 || !hasCandidateAuthors {
		title += author
		author = 0
	}
	return title, author, year
}

// identifiersAgree reports whether the claim and candidate share a DOI or
// an arXiv ID, both present and equal after normalization.
func identifiersAgree(claim reference.Claim, cand reference.Candidate) bool {
	if claim.DOI != "" && cand.DOI != "" &&
		normalize.DOI(claim.DOI) == normalize.DOI(cand.DOI) {
		return true
	}
	if claim.ArXivID != "" && cand.ArXivID != "" &&
		normalize.ArXivID(claim.ArXivID) == normalize.ArXivID(cand.ArXivID) {
		return true
	}
	return false
}
