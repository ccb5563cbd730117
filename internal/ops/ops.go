// Package ops runs the user-facing FASTA file operations. Each call to Run
// selects its inputs, parses them into a record set of its own, transforms
// the records, and writes every output only after all of them were
// rendered, so a failing operation leaves nothing behind.
package ops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/Lakshanj98/Fasta-Analyzer/internal/cleanse"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/composition"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/fasta"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/molecule"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/naming"
)

const (
	// DefaultOutputDir is where outputs go when none is configured.
	DefaultOutputDir = "Output"
	// MergedName is the file name of the merge output.
	MergedName = "multifasta file.fasta"
	// InputExt is the only accepted input extension.
	InputExt = ".fasta"
)

// Orchestrator runs operations. Its fields are collaborators only; no
// operation state survives a call to Run.
type Orchestrator struct {
	Selector  Selector
	Notifier  Notifier
	Fs        afero.Fs
	OutputDir string
	Logger    *log.Logger
}

func (o *Orchestrator) fs() afero.Fs {
	if o.Fs == nil {
		return afero.NewOsFs()
	}
	return o.Fs
}

func (o *Orchestrator) outputDir() string {
	if o.OutputDir == "" {
		return DefaultOutputDir
	}
	return o.OutputDir
}

func (o *Orchestrator) logger() *log.Logger {
	if o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

// Run executes req. Errors are *Error values; unless silent, the user has
// already been notified when Run returns.
func (o *Orchestrator) Run(req Request) (Result, error) {
	start := time.Now()
	logger := o.logger().With("op", req.Op)
	res, err := o.run(req, logger)
	if err != nil {
		var oe *Error
		if !errors.As(err, &oe) {
			oe = notified("Error", "The operation failed", err)
		}
		if !oe.Silent && o.Notifier != nil {
			o.Notifier.Error(oe.Title, oe.Message)
		}
		logger.Debug("operation aborted", "err", oe.Err, "silent", oe.Silent)
		return res, oe
	}
	logger.Info("operation finished", "records", res.Records, "outputs", len(res.Outputs), "duration_ms", time.Since(start).Milliseconds())
	if len(res.Outputs) > 0 && o.Notifier != nil {
		o.Notifier.Info("Task completed!", fmt.Sprintf("Please check %s folder", o.outputDir()))
	}
	return res, nil
}

func (o *Orchestrator) run(req Request, logger *log.Logger) (Result, error) {
	if _, err := ParseOperation(string(req.Op)); err != nil {
		return Result{}, notified("Input Error", "Unknown operation", err)
	}
	paths, err := o.acquire(req.Op)
	if err != nil {
		return Result{}, err
	}
	set := fasta.NewRecordSet()
	for _, p := range paths {
		if err := fasta.ParseFile(o.fs(), p, set); err != nil {
			return Result{}, notified("File Error", fmt.Sprintf("Could not read %s", p), err)
		}
		logger.Debug("parsed fasta", "path", p, "records", set.Len())
	}

	res := Result{Op: req.Op, Records: set.Len()}
	var st stage
	switch req.Op {
	case Count:
		res.Label = fmt.Sprintf("Number of fasta sequences: %d", set.Len())
	case ATContent, GCContent:
		kind := composition.AT
		if req.Op == GCContent {
			kind = composition.GC
		}
		res.Label, err = singleContent(set, kind)
	case Split:
		err = o.perRecord(&st, set, func(r fasta.Record) (fasta.Record, error) { return r, nil })
	case Cleanse:
		err = o.perRecord(&st, set, func(r fasta.Record) (fasta.Record, error) {
			r.Sequence = cleanse.Cleanse(r.Sequence, req.Hint)
			return r, nil
		})
	case Length:
		err = o.perRecord(&st, set, withLength)
	case LengthBatch:
		err = o.batch(&st, set, paths[0], withLength)
	case Content:
		err = o.perRecord(&st, set, withContent(req.Kind, req.Molecule))
	case ContentBatch:
		err = o.batch(&st, set, paths[0], withContent(req.Kind, req.Molecule))
	case Merge:
		st.add(filepath.Join(o.outputDir(), MergedName), set.Records()...)
	}
	if err != nil {
		return Result{}, err
	}
	if len(st.outputs) == 0 {
		return res, nil
	}
	for _, out := range st.outputs {
		logger.Debug("staged output", "path", out.path, "bytes", len(out.data))
	}
	if err := st.commit(o.fs()); err != nil {
		return Result{}, notified("Write Error", fmt.Sprintf("Could not write to %s", o.outputDir()), err)
	}
	res.Outputs = st.paths()
	return res, nil
}

// acquire asks the selector for input paths and validates them.
func (o *Orchestrator) acquire(op Operation) ([]string, error) {
	if o.Selector == nil {
		return nil, silent(fmt.Errorf("%w: %w", ErrInvalidSelection, ErrCancelled))
	}
	var paths []string
	if op.MultiFile() {
		ps, err := o.Selector.SelectMany()
		if err != nil {
			return nil, silent(fmt.Errorf("%w: %w", ErrInvalidSelection, err))
		}
		paths = ps
	} else {
		p, err := o.Selector.SelectOne()
		if err != nil {
			return nil, silent(fmt.Errorf("%w: %w", ErrInvalidSelection, err))
		}
		paths = []string{p}
	}
	if len(paths) == 0 {
		return nil, silent(fmt.Errorf("%w: no file chosen", ErrInvalidSelection))
	}
	for _, p := range paths {
		if p == "" || filepath.Ext(p) != InputExt {
			return nil, silent(fmt.Errorf("%w: %q is not a %s file", ErrInvalidSelection, p, InputExt))
		}
	}
	if op.MultiFile() && len(paths) == 1 {
		return nil, notified("Input Error", "Please select more than one fasta file",
			fmt.Errorf("%w: only one file selected", ErrInvalidSelection))
	}
	return paths, nil
}

type transform func(fasta.Record) (fasta.Record, error)

// perRecord writes every transformed record to a file named after its
// header as parsed, before any annotation.
func (o *Orchestrator) perRecord(st *stage, set *fasta.RecordSet, fn transform) error {
	for _, r := range set.Records() {
		path, err := naming.ResolveOutputPath(r.Header, o.outputDir())
		if err != nil {
			return namingError(err)
		}
		out, err := fn(r)
		if err != nil {
			return err
		}
		st.add(path, out)
	}
	return nil
}

// batch writes every transformed record into one file named after input.
func (o *Orchestrator) batch(st *stage, set *fasta.RecordSet, input string, fn transform) error {
	if !naming.IsPath(input) {
		input = "." + string(os.PathSeparator) + input
	}
	path, err := naming.ResolveOutputPath(input, o.outputDir())
	if err != nil {
		return namingError(err)
	}
	records := set.Records()
	out := make([]fasta.Record, 0, len(records))
	for _, r := range records {
		nr, err := fn(r)
		if err != nil {
			return err
		}
		out = append(out, nr)
	}
	st.add(path, out...)
	return nil
}

func withLength(r fasta.Record) (fasta.Record, error) {
	n, unit, err := composition.LengthWithUnit(r)
	if err != nil {
		return r, classificationError(r, err)
	}
	r.Header = fmt.Sprintf("%s, sequence length %d %s", r.Header, n, unit)
	return r, nil
}

// withContent annotates nucleotide records with their kind content for the
// declared molecule type. Any protein record aborts the whole operation.
func withContent(kind composition.Kind, mt molecule.Type) transform {
	return func(r fasta.Record) (fasta.Record, error) {
		actual, err := molecule.Classify(r.Sequence)
		if err != nil {
			return r, classificationError(r, err)
		}
		if actual == molecule.Protein || mt == molecule.Protein {
			return r, notified("Sequence Type Error", "Please select nucleotide sequences to calculate AT/GC content",
				fmt.Errorf("%w: %s", ErrSequenceType, r.Header))
		}
		c, err := composition.Content(r, kind, mt)
		if err != nil {
			return r, notified("Input Error", "Could not calculate content", err)
		}
		r.Header = r.Header + ", " + c.Label()
		return r, nil
	}
}

// singleContent reports the kind content of the only record in set.
func singleContent(set *fasta.RecordSet, kind composition.Kind) (string, error) {
	if set.Len() != 1 {
		return "", notified("Sequence Number Error",
			fmt.Sprintf("Please select one nucleotide sequence to calculate %s content", kind),
			fmt.Errorf("%w: got %d", ErrSequenceCount, set.Len()))
	}
	r := set.Records()[0]
	mt, err := molecule.Classify(r.Sequence)
	if err != nil {
		return "", classificationError(r, err)
	}
	if mt == molecule.Protein {
		return "", notified("Sequence Type Error",
			fmt.Sprintf("Please select a nucleotide sequence to calculate %s content", kind),
			fmt.Errorf("%w: %s", ErrSequenceType, r.Header))
	}
	c, err := composition.Content(r, kind, mt)
	if err != nil {
		return "", notified("Input Error", "Could not calculate content", err)
	}
	return c.Label(), nil
}

func namingError(err error) error {
	return notified("Naming Error", "A sequence header does not give a usable file name", err)
}

func classificationError(r fasta.Record, err error) error {
	return notified("Classification Error", fmt.Sprintf("Sequence %q is empty", r.Header), err)
}
