package ops

import (
	"fmt"
	"strings"

	"github.com/Lakshanj98/Fasta-Analyzer/internal/cleanse"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/composition"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/molecule"
)

// Operation names a user-facing file operation.
type Operation string

const (
	Split        Operation = "split"
	Count        Operation = "count"
	Merge        Operation = "merge"
	Cleanse      Operation = "cleanse"
	Length       Operation = "length"
	LengthBatch  Operation = "length-batch"
	Content      Operation = "content"
	ContentBatch Operation = "content-batch"
	ATContent    Operation = "at-content"
	GCContent    Operation = "gc-content"
)

// Operations lists every operation in menu order.
var Operations = []Operation{
	Split, Count, Merge, Cleanse, Length, LengthBatch, Content, ContentBatch, ATContent, GCContent,
}

var descriptions = map[Operation]string{
	Split:        "Split a multi-FASTA file into one file per sequence",
	Count:        "Count the sequences in a FASTA file",
	Merge:        "Combine several FASTA files into one multi-FASTA file",
	Cleanse:      "Remove unwanted characters from every sequence",
	Length:       "Add the sequence length to each header, one file per sequence",
	LengthBatch:  "Add sequence lengths to all headers in a single output file",
	Content:      "Add AT/GC content to each header, one file per sequence",
	ContentBatch: "Add AT/GC content to all headers in a single output file",
	ATContent:    "Show the AT content of a single sequence",
	GCContent:    "Show the GC content of a single sequence",
}

// Description is a one-line summary of the operation for menus and help.
func (op Operation) Description() string { return descriptions[op] }

// MultiFile reports whether the operation takes several input files.
func (op Operation) MultiFile() bool { return op == Merge }

// ParseOperation parses an operation name.
func ParseOperation(s string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := descriptions[op]; !ok {
		return "", fmt.Errorf("unknown operation %q", s)
	}
	return op, nil
}

// Request carries an operation and its parameters. Kind and Molecule are
// read by the content operations, Hint by Cleanse.
type Request struct {
	Op       Operation
	Kind     composition.Kind
	Molecule molecule.Type
	Hint     cleanse.Hint
}

func (r Request) String() string {
	switch r.Op {
	case Cleanse:
		return fmt.Sprintf("%s (%s)", r.Op, r.Hint)
	case Content, ContentBatch:
		return fmt.Sprintf("%s (%s, %s)", r.Op, r.Kind, r.Molecule)
	}
	return string(r.Op)
}

// Result describes a completed operation. Label is set for operations that
// report a value instead of writing files.
type Result struct {
	Op      Operation
	Records int
	Label   string
	Outputs []string
}
