package normalize

import "testing"

func TestTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase and trim", "  Attention Is All You Need.  ", "attention is all you need"},
		{"collapse whitespace", "Neural  machine\ttranslation", "neural machine translation"},
		{"latex braces", "{B}ayesian {I}nference", "bayesian inference"},
		{"latex escape", `Deep \textit{Learning}`, "deep learning"},
		{"diacritics", "Schütze on naïve Bayes", "schutze on naive bayes"},
		{"terminal punctuation", "What is life?", "what is life"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Title(tt.input)
			if got != tt.want {
				t.Errorf("Title(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTitleIdempotent(t *testing.T) {
	inputs := []string{
		"  Attention Is All You Need.  ",
		"{B}ayesian {I}nference für alle",
		"Neural  machine translation in linear time",
	}
	for _, in := range inputs {
		once := Title(in)
		twice := Title(once)
		if once != twice {
			t.Errorf("Title not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestVenue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"proceedings prefix", "Proceedings of the 32nd International Conference on Machine Learning", "international conference on machine learning"},
		{"proc abbreviation", "Proc. of the IEEE", "ieee"},
		{"year parenthetical", "NeurIPS (2017)", "neurips"},
		{"volume noise", "Journal of Machine Learning Research, Vol. 12", "journal of machine learning research"},
		{"pages noise", "EMNLP, pp. 1412-1421", "emnlp"},
		{"plain", "Nature", "nature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Venue(tt.input)
			if got != tt.want {
				t.Errorf("Venue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVenueIdempotent(t *testing.T) {
	inputs := []string{
		"Proceedings of the 32nd International Conference on Machine Learning",
		"Advances in Neural Information Processing Systems, Vol. 30",
	}
	for _, in := range inputs {
		once := Venue(in)
		if twice := Venue(once); once != twice {
			t.Errorf("Venue not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestAuthor(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantFull    string
		wantInitial string
	}{
		{"plain", "Nal Kalchbrenner", "nal kalchbrenner", "n. kalchbrenner"},
		{"comma order", "Luong, Minh-Thang", "minh-thang luong", "m. luong"},
		{"already abbreviated", "N. Kalchbrenner", "n. kalchbrenner", "n. kalchbrenner"},
		{"middle name", "Geoffrey E. Hinton", "geoffrey e. hinton", "g. hinton"},
		{"suffix", "Robert Smith Jr.", "robert smith", "r. smith"},
		{"honorific", "Dr. Jane Doe", "jane doe", "j. doe"},
		{"ref marker", "[3] Yann LeCun", "yann lecun", "y. lecun"},
		{"diacritics", "François Chollet", "francois chollet", "f. chollet"},
		{"single name", "Madonna", "madonna", "madonna"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Author(tt.input)
			if got.Full != tt.wantFull {
				t.Errorf("Author(%q).Full = %q, want %q", tt.input, got.Full, tt.wantFull)
			}
			if got.Initial != tt.wantInitial {
				t.Errorf("Author(%q).Initial = %q, want %q", tt.input, got.Initial, tt.wantInitial)
			}
		})
	}
}

func TestAuthorIdempotent(t *testing.T) {
	inputs := []string{"Nal Kalchbrenner", "Luong, Minh-Thang", "Geoffrey E. Hinton"}
	for _, in := range inputs {
		once := Author(in)
		if again := Author(once.Full); again.Full != once.Full {
			t.Errorf("Author full form not idempotent: %q -> %q -> %q", in, once.Full, again.Full)
		}
		if again := Author(once.Initial); again.Initial != once.Initial {
			t.Errorf("Author initial form not idempotent: %q -> %q -> %q", in, once.Initial, again.Initial)
		}
	}
}

func TestDOI(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10.1038/nature12373", "10.1038/nature12373"},
		{"https://doi.org/10.1038/Nature12373", "10.1038/nature12373"},
		{"DOI:10.1/X", "10.1/x"},
		{"10.1/x#fragment", "10.1/x"},
		{"", ""},
	}

	for _, tt := range tests {
		got := DOI(tt.input)
		if got != tt.want {
			t.Errorf("DOI(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if again := DOI(got); again != got {
			t.Errorf("DOI not idempotent: %q -> %q -> %q", tt.input, got, again)
		}
	}
}

func TestArXivID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1706.03762", "1706.03762"},
		{"1706.03762v5", "1706.03762"},
		{"arXiv:1706.03762", "1706.03762"},
		{"https://arxiv.org/abs/1706.03762v2", "1706.03762"},
		{"https://arxiv.org/pdf/1706.03762.pdf", "1706.03762"},
		{"cs.CL/0001001", "cs.cl/0001001"},
		{"", ""},
	}

	for _, tt := range tests {
		got := ArXivID(tt.input)
		if got != tt.want {
			t.Errorf("ArXivID(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if again := ArXivID(got); again != got {
			t.Errorf("ArXivID not idempotent: %q -> %q -> %q", tt.input, got, again)
		}
	}
}
