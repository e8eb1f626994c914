// Package report aggregates per-reference verification outcomes into a
// structured result set.
package report

import (
	"github.com/LyzardKing/refchecker/internal/compare"
	"github.com/LyzardKing/refchecker/internal/reference"
	"github.com/LyzardKing/refchecker/internal/resolve"
)

// Entry is the detailed outcome for one bibliography entry.
type Entry struct {
	Claim     reference.Claim `json:"claim"`
	Status    resolve.Status  `json:"status"`
	Attempted []string        `json:"attempted,omitempty"`

	// Canonical is the matched record when the claim resolved.
	Canonical *reference.Candidate `json:"canonical,omitempty"`

	// Score is the composite match score when the claim resolved.
	Score float64 `json:"score,omitempty"`

	Discrepancies []compare.Discrepancy `json:"discrepancies"`
}

// Summary holds the aggregate counts for a verification run.
type Summary struct {
	References int `json:"references"`
	Errors     int `json:"errors"`
	Warnings   int `json:"warnings"`
	Unresolved int `json:"unresolved"`
}

// Report is the aggregate result of verifying one bibliography. Entries
// preserve the original bibliography order.
type Report struct {
	Entries []Entry `json:"entries"`
	Summary Summary `json:"summary"`
}

// Aggregate collects resolutions and their discrepancy lists into a
// Report. Pure accumulation: input order is preserved and no further
// decisions are made. The two slices are parallel; discrepancies[i]
// belongs to resolutions[i].
func Aggregate(resolutions []resolve.Resolution, discrepancies [][]compare.Discrepancy) Report {
	rep := Report{
		Entries: make([]Entry, 0, len(resolutions)),
		Summary: Summary{References: len(resolutions)},
	}

	for i, res := range resolutions {
		entry := Entry{
			Claim:         res.Claim,
			Status:        res.Status,
			Attempted:     res.Attempted,
			Discrepancies: []compare.Discrepancy{},
		}
		if res.Status == resolve.Resolved && res.Match != nil {
			entry.Canonical = res.Match.Candidate
			entry.Score = res.Match.Score
		} else {
			rep.Summary.Unresolved++
		}
		if i < len(discrepancies) && discrepancies[i] != nil {
			entry.Discrepancies = discrepancies[i]
		}

		for _, d := range entry.Discrepancies {
			switch d.Severity {
			case compare.SeverityError:
				rep.Summary.Errors++
			case compare.SeverityWarning:
				rep.Summary.Warnings++
			}
		}

		rep.Entries = append(rep.Entries, entry)
	}

	return rep
}
