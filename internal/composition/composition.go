// Package composition computes sequence length and AT/GC content.
//
// Ratios are rounded for display with round-half-to-even on the value scaled
// to hundredths, so 0.125 displays as "0.12" and 0.135 as "0.14". The display
// string is never fed back into a computation.
package composition

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Lakshanj98/Fasta-Analyzer/internal/fasta"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/molecule"
)

// Kind selects the pair of bases counted.
type Kind string

const (
	AT Kind = "AT"
	GC Kind = "GC"
)

var (
	// ErrEmptySequence is returned instead of dividing by zero.
	ErrEmptySequence = errors.New("empty sequence has no base content")
	// ErrProteinSequence is returned when base content is asked of a protein.
	ErrProteinSequence = errors.New("base content is undefined for protein sequences")
)

// Result is a computed content ratio with its display form.
type Result struct {
	Kind    Kind
	Ratio   float64
	Display string
}

// Label renders the result the way it is appended to headers and shown to
// the user, e.g. "AT content: 0.50".
func (r Result) Label() string {
	return fmt.Sprintf("%s content: %s", r.Kind, r.Display)
}

// ParseKind parses "AT" or "GC", ignoring case.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToUpper(strings.TrimSpace(s))); k {
	case AT, GC:
		return k, nil
	}
	return "", fmt.Errorf("unknown content kind %q", s)
}

// Bases returns the letters counted for kind in a molecule of type mt.
func Bases(kind Kind, mt molecule.Type) (string, error) {
	if mt == molecule.Protein {
		return "", ErrProteinSequence
	}
	switch kind {
	case AT:
		if mt == molecule.RNA {
			return "AU", nil
		}
		return "AT", nil
	case GC:
		return "GC", nil
	}
	return "", fmt.Errorf("unknown content kind %q", kind)
}

// LengthWithUnit returns the length of rec and "aa" or "bp" depending on its
// classification.
func LengthWithUnit(rec fasta.Record) (int, string, error) {
	mt, err := molecule.Classify(rec.Sequence)
	if err != nil {
		return 0, "", err
	}
	return len(rec.Sequence), mt.Unit(), nil
}

// ContentRatio returns the fraction of seq made of the bases selected by
// kind for molecule type mt.
func ContentRatio(seq string, kind Kind, mt molecule.Type) (float64, error) {
	bases, err := Bases(kind, mt)
	if err != nil {
		return 0, err
	}
	if len(seq) == 0 {
		return 0, ErrEmptySequence
	}
	n := 0
	for i := 0; i < len(seq); i++ {
		if strings.IndexByte(bases, seq[i]) >= 0 {
			n++
		}
	}
	return float64(n) / float64(len(seq)), nil
}

// Content computes the kind content of rec for molecule type mt.
func Content(rec fasta.Record, kind Kind, mt molecule.Type) (Result, error) {
	r, err := ContentRatio(rec.Sequence, kind, mt)
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: kind, Ratio: r, Display: FormatRatio(r)}, nil
}

// FormatRatio rounds r half-to-even to two decimals.
func FormatRatio(r float64) string {
	return fmt.Sprintf("%.2f", math.RoundToEven(r*100)/100)
}
