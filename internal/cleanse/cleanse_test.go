package cleanse

import "testing"

func TestCleanseNucleotide(t *testing.T) {
	cases := map[string]string{
		"ATGC":        "ATGC",
		"ATNNGC-RY*U": "ATGCU",
		"XXXX":        "",
		"":            "",
		"acgt":        "",
	}
	for in, want := range cases {
		if got := Cleanse(in, Nucleotide); got != want {
			t.Fatalf("Cleanse(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanseProtein(t *testing.T) {
	cases := map[string]string{
		"MKXVLX": "MKVL",
		"MK*-B":  "MK*-B",
		"X":      "",
	}
	for in, want := range cases {
		if got := Cleanse(in, Protein); got != want {
			t.Fatalf("Cleanse(%q, Protein) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanseIdempotent(t *testing.T) {
	for _, s := range []string{"ATNNGC-RY*U", "MKXVLX", "NNNN"} {
		for _, h := range []Hint{Nucleotide, Protein} {
			once := Cleanse(s, h)
			if twice := Cleanse(once, h); twice != once {
				t.Fatalf("Cleanse not idempotent for %q (%v): %q then %q", s, h, once, twice)
			}
		}
	}
}

func TestParseHint(t *testing.T) {
	if h, err := ParseHint("Protein"); err != nil || h != Protein {
		t.Fatalf("got %v %v", h, err)
	}
	if h, err := ParseHint("nucleotide"); err != nil || h != Nucleotide {
		t.Fatalf("got %v %v", h, err)
	}
	if _, err := ParseHint("dna"); err == nil {
		t.Fatalf("expected error")
	}
}
