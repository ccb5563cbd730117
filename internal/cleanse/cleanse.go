// Package cleanse removes unwanted characters from sequences.
package cleanse

import (
	"fmt"
	"strings"
)

// Hint says which alphabet a sequence is expected to use.
type Hint int

const (
	Nucleotide Hint = iota
	Protein
)

func (h Hint) String() string {
	if h == Protein {
		return "protein"
	}
	return "nucleotide"
}

// ParseHint parses "nucleotide" or "protein", ignoring case.
func ParseHint(s string) (Hint, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nucleotide", "nt":
		return Nucleotide, nil
	case "protein", "aa":
		return Protein, nil
	}
	return 0, fmt.Errorf("unknown sequence hint %q", s)
}

// Cleanse filters seq. Nucleotide keeps only A, T, G, C and U. Protein drops
// the unknown residue X and keeps everything else.
func Cleanse(seq string, hint Hint) string {
	if hint == Protein {
		return strings.ReplaceAll(seq, "X", "")
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case 'A', 'T', 'G', 'C', 'U':
			return r
		}
		return -1
	}, seq)
}
