// Package molecule classifies sequences as DNA, RNA or protein from their
// alphabet.
package molecule

import (
	"errors"
	"fmt"
	"strings"
)

// Type is the molecule type of a sequence. It is derived from the sequence
// on demand and never stored on a record.
type Type int

const (
	DNA Type = iota
	RNA
	Protein
)

// ErrEmptySequence is returned when an empty sequence is classified.
var ErrEmptySequence = errors.New("cannot classify an empty sequence")

// proteinOnly holds the one-letter codes that mark a sequence as protein.
var proteinOnly = [256]bool{
	'K': true, 'N': true, 'R': true, 'S': true, 'I': true, 'M': true,
	'Q': true, 'H': true, 'P': true, 'L': true, 'E': true, 'D': true,
	'V': true, 'Y': true, 'W': true, 'F': true,
}

// IsProteinLetter reports whether b is a protein-only letter.
func IsProteinLetter(b byte) bool { return proteinOnly[b] }

// Classify returns the molecule type of seq. Only the first character is
// examined: a protein-only letter gives Protein, 'U' gives RNA and anything
// else gives DNA. "EATG" is therefore Protein and "ATGE" is DNA.
func Classify(seq string) (Type, error) {
	if seq == "" {
		return 0, ErrEmptySequence
	}
	switch c := seq[0]; {
	case proteinOnly[c]:
		return Protein, nil
	case c == 'U':
		return RNA, nil
	default:
		return DNA, nil
	}
}

func (t Type) String() string {
	switch t {
	case DNA:
		return "DNA"
	case RNA:
		return "RNA"
	case Protein:
		return "Protein"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Unit is the length unit used when annotating headers.
func (t Type) Unit() string {
	if t == Protein {
		return "aa"
	}
	return "bp"
}

// ParseType parses a molecule type name, ignoring case.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dna":
		return DNA, nil
	case "rna":
		return RNA, nil
	case "protein":
		return Protein, nil
	}
	return 0, fmt.Errorf("unknown molecule type %q", s)
}
