package compare

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LyzardKing/refchecker/internal/match"
	"github.com/LyzardKing/refchecker/internal/normalize"
	"github.com/LyzardKing/refchecker/internal/reference"
	"github.com/LyzardKing/refchecker/internal/resolve"
)

// Config holds the comparator's thresholds.
type Config struct {
	// StrictTitle is the minimum normalized title similarity a matched
	// record must reach; below it the title mismatch is an error. This
	// guards against the matcher accepting a borderline match.
	StrictTitle float64

	// Venue is the minimum venue similarity before a warning is raised.
	// Deliberately loose: venues have many equivalent abbreviations.
	Venue float64
}

// DefaultConfig returns the standard comparison thresholds.
func DefaultConfig() Config {
	return Config{
		StrictTitle: 0.85,
		Venue:       0.4,
	}
}

// Comparator compares claimed metadata against canonical records. It is
// stateless and safe for concurrent use.
type Comparator struct {
	cfg Config
}

// New creates a Comparator with the given configuration.
func New(cfg Config) *Comparator {
	return &Comparator{cfg: cfg}
}

// Compare returns the discrepancies between the claim and its resolved
// canonical record. An unresolved claim yields exactly one "unverified"
// warning and nothing else. Fields absent on the claim side are never
// compared, except identifiers, which are compared whenever present.
func (c *Comparator) Compare(res resolve.Resolution) []Discrepancy {
	if res.Status != resolve.Resolved || res.Match == nil || res.Match.Candidate == nil {
		return []Discrepancy{unverified(res)}
	}

	claim := res.Claim
	canonical := *res.Match.Candidate

	// Exact arXiv agreement relaxes author and year severity: provider
	// author lists are often incomplete for preprints, and conference
	// versus preprint years commonly drift.
	arxivAgrees := claimedArXivID(claim) != "" && canonical.ArXivID != "" &&
		claimedArXivID(claim) == normalize.ArXivID(canonical.ArXivID)

	var out []Discrepancy
	if d := c.compareTitle(claim, canonical); d != nil {
		out = append(out, *d)
	}
	if d := c.compareAuthors(claim, canonical, arxivAgrees); d != nil {
		out = append(out, *d)
	}
	if d := c.compareYear(claim, canonical, arxivAgrees); d != nil {
		out = append(out, *d)
	}
	if d := c.compareVenue(claim, canonical); d != nil {
		out = append(out, *d)
	}
	if d := c.compareDOI(claim, canonical); d != nil {
		out = append(out, *d)
	}
	if d := c.compareArXivID(claim, canonical); d != nil {
		out = append(out, *d)
	}
	return out
}

func unverified(res resolve.Resolution) Discrepancy {
	msg := "could not verify reference against any provider"
	if len(res.Attempted) > 0 {
		msg = fmt.Sprintf("could not verify reference (tried %s)", strings.Join(res.Attempted, ", "))
	}
	return Discrepancy{
		Field:    FieldUnverified,
		Severity: SeverityWarning,
		Message:  msg,
	}
}

func (c *Comparator) compareTitle(claim reference.Claim, canonical reference.Candidate) *Discrepancy {
	if claim.Title == "" {
		return nil
	}
	if match.TitleSimilarity(claim.Title, canonical.Title) >= c.cfg.StrictTitle {
		return nil
	}
	return &Discrepancy{
		Field:     FieldTitle,
		Severity:  SeverityError,
		Message:   fmt.Sprintf("Title mismatch: cited as '%s' but actually '%s'", claim.Title, canonical.Title),
		Claimed:   claim.Title,
		Canonical: canonical.Title,
	}
}

func (c *Comparator) compareAuthors(claim reference.Claim, canonical reference.Candidate, arxivAgrees bool) *Discrepancy {
	claimed := claim.FirstAuthor()
	actual := canonical.FirstAuthor()
	if claimed == "" || actual == "" {
		return nil
	}
	if match.FirstAuthorMatches(claimed, actual) {
		return nil
	}

	d := &Discrepancy{
		Field:     FieldAuthor,
		Severity:  SeverityError,
		Message:   fmt.Sprintf("First author mismatch: cited as '%s' but actually '%s'", claimed, actual),
		Claimed:   claimed,
		Canonical: actual,
	}
	if arxivAgrees {
		d.Severity = SeverityWarning
		d.Message += " (arXiv ID matches exactly; provider author data may be incomplete)"
	}
	return d
}

func (c *Comparator) compareYear(claim reference.Claim, canonical reference.Candidate, arxivAgrees bool) *Discrepancy {
	if claim.Year == 0 || canonical.Year == 0 || claim.Year == canonical.Year {
		return nil
	}
	msg := fmt.Sprintf("Year mismatch: cited as %d but actually %d", claim.Year, canonical.Year)
	if arxivAgrees {
		msg += " (arXiv ID matches exactly; likely preprint versus publication year)"
	}
	return &Discrepancy{
		Field:     FieldYear,
		Severity:  SeverityWarning,
		Message:   msg,
		Claimed:   strconv.Itoa(claim.Year),
		Canonical: strconv.Itoa(canonical.Year),
	}
}

func (c *Comparator) compareVenue(claim reference.Claim, canonical reference.Candidate) *Discrepancy {
	if claim.Venue == "" || canonical.Venue == "" {
		return nil
	}
	if match.VenueSimilarity(claim.Venue, canonical.Venue) >= c.cfg.Venue {
		return nil
	}
	return &Discrepancy{
		Field:     FieldVenue,
		Severity:  SeverityWarning,
		Message:   fmt.Sprintf("Venue mismatch: cited as '%s' but actually '%s'", claim.Venue, canonical.Venue),
		Claimed:   claim.Venue,
		Canonical: canonical.Venue,
	}
}

func (c *Comparator) compareDOI(claim reference.Claim, canonical reference.Candidate) *Discrepancy {
	claimed := claimedDOI(claim)
	if claimed == "" || canonical.DOI == "" {
		return nil
	}
	actual := normalize.DOI(canonical.DOI)
	if claimed == actual {
		return nil
	}
	return &Discrepancy{
		Field:     FieldDOI,
		Severity:  SeverityError,
		Message:   fmt.Sprintf("DOI mismatch: cited as %s but actually %s", claimed, actual),
		Claimed:   claimed,
		Canonical: actual,
	}
}

func (c *Comparator) compareArXivID(claim reference.Claim, canonical reference.Candidate) *Discrepancy {
	claimed := claimedArXivID(claim)
	if claimed == "" || canonical.ArXivID == "" {
		return nil
	}
	actual := normalize.ArXivID(canonical.ArXivID)
	if claimed == actual {
		return nil
	}
	return &Discrepancy{
		Field:     FieldURL,
		Severity:  SeverityError,
		Message:   fmt.Sprintf("arXiv ID mismatch: cited as %s but actually %s", claimed, actual),
		Claimed:   claimed,
		Canonical: actual,
	}
}

// claimedDOI returns the claim's normalized DOI, falling back to a DOI
// embedded in its URL.
func claimedDOI(claim reference.Claim) string {
	if claim.DOI != "" {
		return normalize.DOI(claim.DOI)
	}
	if strings.Contains(claim.URL, "doi.org/") {
		return normalize.DOI(claim.URL)
	}
	return ""
}

// claimedArXivID returns the claim's normalized arXiv ID, falling back to
// an ID embedded in its URL.
func claimedArXivID(claim reference.Claim) string {
	if claim.ArXivID != "" {
		return normalize.ArXivID(claim.ArXivID)
	}
	if strings.Contains(claim.URL, "arxiv.org/") {
		return normalize.ArXivID(claim.URL)
	}
	return ""
}
