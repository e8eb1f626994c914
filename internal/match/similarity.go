package match

import (
	"sort"
	"strings"

	"github.com/LyzardKing/refchecker/internal/normalize"
)

// TitleSimilarity returns a similarity in [0,1] between two titles. Both
// sides are normalized first, and the comparison is token-order-insensitive:
// the score is the better of the plain and token-sorted Levenshtein ratios,
// so "linear time neural machine translation" still scores highly against
// "neural machine translation in linear time".
func TitleSimilarity(a, b string) float64 {
	na := normalize.Title(a)
	nb := normalize.Title(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}
	plain := levenshteinRatio(na, nb)
	sorted := levenshteinRatio(sortTokens(na), sortTokens(nb))
	if sorted > plain {
		return sorted
	}
	return plain
}

// AuthorSimilarity compares the first authors of the claim and candidate
// under both full and initial normalized forms, taking the best ratio.
// A disagreement in author-list length dampens the score slightly.
func AuthorSimilarity(claimAuthors, candidateAuthors []string) float64 {
	if len(claimAuthors) == 0 || len(candidateAuthors) == 0 {
		return 0
	}
	cf := normalize.Author(claimAuthors[0])
	kf := normalize.Author(candidateAuthors[0])
	if cf.Full == "" || kf.Full == "" {
		return 0
	}

	sim := levenshteinRatio(cf.Full, kf.Full)
	if cf.Initial != "" && kf.Initial != "" {
		if r := levenshteinRatio(cf.Initial, kf.Initial); r > sim {
			sim = r
		}
	}

	if len(claimAuthors) != len(candidateAuthors) {
		sim *= 0.9
	}
	return sim
}

// FirstAuthorMatches reports whether two author names agree under either
// the full or the initial normalized form. This is the strict test used by
// the field comparator, as opposed to the graded score used for ranking.
func FirstAuthorMatches(claimed, canonical string) bool {
	c := normalize.Author(claimed)
	k := normalize.Author(canonical)
	if c.Full == "" || k.Full == "" {
		return false
	}
	return c.Full == k.Full || c.Initial == k.Initial ||
		c.Full == k.Initial || c.Initial == k.Full
}

// YearSimilarity scores the agreement of two publication years. Absent
// years (zero) never penalize; a one-year difference scores 0.5 to absorb
// preprint-versus-published drift.
func YearSimilarity(claimed, candidate int) float64 {
	if claimed == 0 || candidate == 0 || claimed == candidate {
		return 1
	}
	diff := claimed - candidate
	if diff == 1 || diff == -1 {
		return 0.5
	}
	return 0
}

// VenueSimilarity returns a similarity in [0,1] between two venue strings
// using token overlap on normalized forms. Venues have many equivalent
// abbreviations, so containment of one side's tokens in the other counts
// as a full match.
func VenueSimilarity(a, b string) float64 {
	na := normalize.Venue(a)
	nb := normalize.Venue(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb || strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 1
	}

	ta := strings.Fields(na)
	tb := strings.Fields(nb)
	set := make(map[string]bool, len(ta))
	for _, tok := range ta {
		set[tok] = true
	}
	var common int
	for _, tok := range tb {
		if set[tok] {
			common++
		}
	}
	union := len(ta) + len(tb) - common
	if union == 0 {
		return 0
	}
	return float64(common) / float64(union)
}

// sortTokens rewrites a normalized string with its tokens in sorted order.
func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// levenshteinRatio converts edit distance into a similarity in [0,1].
func levenshteinRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	ra := []rune(a)
	rb := []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

// levenshtein computes the edit distance between two rune slices using a
// two-row dynamic programming table.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func minInt(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
