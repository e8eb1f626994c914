package extract

import (
	"strings"
	"testing"
)

func TestEntriesNumbered(t *testing.T) {
	text := `[1] A. Vaswani, N. Shazeer, et al. Attention is all you need. In Advances in
Neural Information Processing Systems, pages 5998-6008, 2017.
[2] J. Devlin, M. Chang, K. Lee, and K. Toutanova. BERT: pre-training of deep
bidirectional transformers for language understanding. arXiv:1810.04805, 2018.`

	claims := Entries(text)
	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(claims))
	}

	first := claims[0]
	if first.Title != "Attention is all you need" {
		t.Errorf("Title = %q", first.Title)
	}
	if len(first.Authors) != 2 || first.Authors[0] != "A. Vaswani" {
		t.Errorf("Authors = %v", first.Authors)
	}
	if first.Year != 2017 {
		t.Errorf("Year = %d", first.Year)
	}
	if !strings.Contains(first.Venue, "Neural Information Processing Systems") {
		t.Errorf("Venue = %q", first.Venue)
	}
	if !strings.HasPrefix(first.RawText, "[1]") {
		t.Errorf("RawText = %q", first.RawText)
	}

	second := claims[1]
	if second.ArXivID != "1810.04805" {
		t.Errorf("ArXivID = %q", second.ArXivID)
	}
	if second.Year != 2018 {
		t.Errorf("Year = %d", second.Year)
	}
	if len(second.Authors) != 4 {
		t.Errorf("Authors = %v", second.Authors)
	}
}

func TestEntriesBlankLineSeparated(t *testing.T) {
	text := `Vaswani, A., Shazeer, N. "Attention Is All You Need."
Advances in Neural Information Processing Systems, 2017.

He, K. "Deep Residual Learning for Image Recognition."
CVPR, 2016. https://doi.org/10.1109/CVPR.2016.90`

	claims := Entries(text)
	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(claims))
	}

	if claims[0].Title != "Attention Is All You Need" {
		t.Errorf("Title = %q", claims[0].Title)
	}
	if len(claims[0].Authors) != 2 || claims[0].Authors[0] != "Vaswani, A" {
		t.Errorf("Authors = %v", claims[0].Authors)
	}
	if claims[1].DOI != "10.1109/cvpr.2016.90" {
		t.Errorf("DOI = %q", claims[1].DOI)
	}
}

func TestEntriesDOIExtraction(t *testing.T) {
	claims := Entries(`[1] Some Author. Some title. Journal, 2020. doi:10.1000/xyz123.`)
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
	if claims[0].DOI != "10.1000/xyz123" {
		t.Errorf("DOI = %q", claims[0].DOI)
	}
}

func TestEntriesUnparseableKeepsRawText(t *testing.T) {
	raw := `some unstructured fragment without recognizable fields`
	claims := Entries(raw)
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
	if claims[0].RawText != raw {
		t.Errorf("RawText = %q", claims[0].RawText)
	}
	if claims[0].DOI != "" || claims[0].ArXivID != "" || claims[0].Year != 0 {
		t.Errorf("expected empty identifiers, got %+v", claims[0])
	}
}

func TestEntriesEmpty(t *testing.T) {
	if claims := Entries("   \n\n  "); len(claims) != 0 {
		t.Errorf("expected no claims, got %d", len(claims))
	}
}

func TestReferencesSection(t *testing.T) {
	text := `Introduction mentioning prior work.

References

[1] First entry.
[2] Second entry.

Appendix A

Extra material.`

	section := referencesSection(text)
	if !strings.Contains(section, "[1] First entry.") {
		t.Errorf("section missing entries: %q", section)
	}
	if strings.Contains(section, "Extra material") {
		t.Errorf("section includes appendix: %q", section)
	}
}

func TestReferencesSectionMissing(t *testing.T) {
	if got := referencesSection("no bibliography here"); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}
