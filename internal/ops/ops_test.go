package ops

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lakshanj98/Fasta-Analyzer/internal/cleanse"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/composition"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/fasta"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/molecule"
	"github.com/Lakshanj98/Fasta-Analyzer/internal/naming"
)

const example = ">seq1\nATGC\n>seq2\nGGCC\n"

type fixture struct {
	fs       afero.Fs
	notifier *RecordingNotifier
	logs     *bytes.Buffer
}

func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(body), 0o644))
	}
	return &fixture{fs: fsys, notifier: &RecordingNotifier{}, logs: &bytes.Buffer{}}
}

func (f *fixture) orchestrator(sel Selector) *Orchestrator {
	logger := log.New(f.logs)
	logger.SetLevel(log.DebugLevel)
	return &Orchestrator{Selector: sel, Notifier: f.notifier, Fs: f.fs, OutputDir: "Output", Logger: logger}
}

func (f *fixture) read(t *testing.T, path string) string {
	t.Helper()
	b, err := afero.ReadFile(f.fs, path)
	require.NoError(t, err)
	return string(b)
}

func (f *fixture) outputCount(t *testing.T) int {
	t.Helper()
	ok, err := afero.DirExists(f.fs, "Output")
	require.NoError(t, err)
	if !ok {
		return 0
	}
	entries, err := afero.ReadDir(f.fs, "Output")
	require.NoError(t, err)
	return len(entries)
}

func TestCountExample(t *testing.T) {
	f := newFixture(t, map[string]string{"in/seqs.fasta": example})
	res, err := f.orchestrator(StaticSelector{"in/seqs.fasta"}).Run(Request{Op: Count})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Records)
	assert.Equal(t, "Number of fasta sequences: 2", res.Label)
	assert.Empty(t, res.Outputs)
	assert.Empty(t, f.notifier.Notifications())
	assert.Equal(t, 0, f.outputCount(t))
}

func TestSplitExample(t *testing.T) {
	f := newFixture(t, map[string]string{"in/seqs.fasta": example})
	res, err := f.orchestrator(StaticSelector{"in/seqs.fasta"}).Run(Request{Op: Split})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("Output", "seq1.fasta"), filepath.Join("Output", "seq2.fasta")}, res.Outputs)
	assert.Equal(t, ">seq1\nATGC\n", f.read(t, filepath.Join("Output", "seq1.fasta")))
	assert.Equal(t, ">seq2\nGGCC\n", f.read(t, filepath.Join("Output", "seq2.fasta")))
	assert.Equal(t, 2, f.outputCount(t))

	n, ok := f.notifier.Last()
	require.True(t, ok)
	assert.Equal(t, SeverityInfo, n.Severity)
	assert.Equal(t, "Task completed!", n.Title)
	assert.Equal(t, "Please check Output folder", n.Message)
}

func TestSplitRoundTrip(t *testing.T) {
	f := newFixture(t, map[string]string{"in/r.fasta": ">acc9:chr1 region\natgc\nnnTT\n\n>acc10 x\nMKV\n"})
	_, err := f.orchestrator(StaticSelector{"in/r.fasta"}).Run(Request{Op: Split})
	require.NoError(t, err)

	orig, err := fasta.ParseFiles(f.fs, "in/r.fasta")
	require.NoError(t, err)
	for _, rec := range orig.Records() {
		path, err := naming.ResolveOutputPath(rec.Header, "Output")
		require.NoError(t, err)
		set, err := fasta.ParseFiles(f.fs, path)
		require.NoError(t, err)
		got := set.Records()
		require.Len(t, got, 1)
		assert.Equal(t, rec.Header, got[0].Header)
		assert.Equal(t, rec.Sequence, got[0].Sequence)
	}
}

func TestSingleContentExample(t *testing.T) {
	f := newFixture(t, map[string]string{
		"in/seq1.fasta": ">seq1\nATGC\n",
		"in/seq2.fasta": ">seq2\nGGCC\n",
		"in/rna.fasta":  ">r\nUAGC\n",
	})
	res, err := f.orchestrator(StaticSelector{"in/seq1.fasta"}).Run(Request{Op: ATContent})
	require.NoError(t, err)
	assert.Equal(t, "AT content: 0.50", res.Label)

	res, err = f.orchestrator(StaticSelector{"in/seq2.fasta"}).Run(Request{Op: GCContent})
	require.NoError(t, err)
	assert.Equal(t, "GC content: 1.00", res.Label)

	res, err = f.orchestrator(StaticSelector{"in/rna.fasta"}).Run(Request{Op: ATContent})
	require.NoError(t, err)
	assert.Equal(t, "AT content: 0.50", res.Label)
	assert.Empty(t, f.notifier.Notifications())
}

// The single-sequence report counts the bases of the classified molecule
// type, so an RNA sequence that does not start with U is counted as DNA.
func TestSingleContentUsesClassifiedType(t *testing.T) {
	f := newFixture(t, map[string]string{"in/rna.fasta": ">r\nAUGC\n"})
	res, err := f.orchestrator(StaticSelector{"in/rna.fasta"}).Run(Request{Op: ATContent})
	require.NoError(t, err)
	assert.Equal(t, "AT content: 0.25", res.Label)
}

func TestSingleContentCount(t *testing.T) {
	f := newFixture(t, map[string]string{"in/seqs.fasta": example, "in/empty.fasta": "\n\n"})
	for _, path := range []string{"in/seqs.fasta", "in/empty.fasta"} {
		_, err := f.orchestrator(StaticSelector{path}).Run(Request{Op: GCContent})
		require.ErrorIs(t, err, ErrSequenceCount, path)
		n, _ := f.notifier.Last()
		assert.Equal(t, "Sequence Number Error", n.Title)
		assert.Equal(t, SeverityError, n.Severity)
	}
	assert.Equal(t, 0, f.outputCount(t))
}

func TestSingleContentProtein(t *testing.T) {
	f := newFixture(t, map[string]string{"in/p.fasta": ">p\nMKVL\n"})
	_, err := f.orchestrator(StaticSelector{"in/p.fasta"}).Run(Request{Op: ATContent})
	require.ErrorIs(t, err, ErrSequenceType)
}

func TestMergeNeedsTwoFiles(t *testing.T) {
	f := newFixture(t, map[string]string{"in/a.fasta": ">a\nAAA\n"})
	_, err := f.orchestrator(StaticSelector{"in/a.fasta"}).Run(Request{Op: Merge})
	require.ErrorIs(t, err, ErrInvalidSelection)
	assert.Equal(t, 0, f.outputCount(t))

	n, ok := f.notifier.Last()
	require.True(t, ok)
	assert.Equal(t, "Input Error", n.Title)
	assert.Equal(t, "Please select more than one fasta file", n.Message)
}

func TestMerge(t *testing.T) {
	f := newFixture(t, map[string]string{
		"in/a.fasta": ">a\nAAA\n>shared\nCCC\n",
		"in/b.fasta": ">b\nGGG\n>shared\nTTT\n",
	})
	res, err := f.orchestrator(StaticSelector{"in/a.fasta", "in/b.fasta"}).Run(Request{Op: Merge})
	require.NoError(t, err)
	out := filepath.Join("Output", MergedName)
	assert.Equal(t, []string{out}, res.Outputs)
	assert.Equal(t, ">a\nAAA\n>shared\nTTT\n>b\nGGG\n", f.read(t, out))
}

func TestSelectionAbortsSilently(t *testing.T) {
	f := newFixture(t, map[string]string{"in/a.fa": ">a\nAAA\n", "in/b.txt": ">b\nC\n"})
	cases := []Selector{
		StaticSelector{},
		StaticSelector{"in/a.fa"},
		StaticSelector{""},
		nil,
	}
	for _, sel := range cases {
		_, err := f.orchestrator(sel).Run(Request{Op: Split})
		require.ErrorIs(t, err, ErrInvalidSelection)
	}
	_, err := f.orchestrator(StaticSelector{"in/a.fasta", "in/b.txt"}).Run(Request{Op: Merge})
	require.ErrorIs(t, err, ErrInvalidSelection)

	assert.Empty(t, f.notifier.Notifications())
	assert.Equal(t, 0, f.outputCount(t))
}

func TestCancelledSelectionWrapsCause(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.orchestrator(StaticSelector{}).Run(Request{Op: Count})
	var oe *Error
	require.True(t, errors.As(err, &oe))
	assert.True(t, oe.Silent)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestContentBatchRejectsProtein(t *testing.T) {
	f := newFixture(t, map[string]string{"in/mix.fasta": ">n1\nATGC\n>p1\nMKVLA\n>n2\nGGCC\n"})
	for _, op := range []Operation{Content, ContentBatch} {
		_, err := f.orchestrator(StaticSelector{"in/mix.fasta"}).Run(Request{Op: op, Kind: composition.GC, Molecule: molecule.DNA})
		require.ErrorIs(t, err, ErrSequenceType, op)
		n, _ := f.notifier.Last()
		assert.Equal(t, "Sequence Type Error", n.Title)
	}
	assert.Equal(t, 0, f.outputCount(t))
}

func TestContentPerRecord(t *testing.T) {
	f := newFixture(t, map[string]string{"in/seqs.fasta": example})
	_, err := f.orchestrator(StaticSelector{"in/seqs.fasta"}).Run(Request{Op: Content, Kind: composition.AT, Molecule: molecule.DNA})
	require.NoError(t, err)
	assert.Equal(t, ">seq1, AT content: 0.50\nATGC\n", f.read(t, filepath.Join("Output", "seq1.fasta")))
	assert.Equal(t, ">seq2, AT content: 0.00\nGGCC\n", f.read(t, filepath.Join("Output", "seq2.fasta")))
}

func TestContentBatchRNA(t *testing.T) {
	f := newFixture(t, map[string]string{"in/rna.fasta": ">r1\nAUGC\n>r2\nAAUU\n"})
	res, err := f.orchestrator(StaticSelector{"in/rna.fasta"}).Run(Request{Op: ContentBatch, Kind: composition.AT, Molecule: molecule.RNA})
	require.NoError(t, err)
	out := filepath.Join("Output", "rna.fasta")
	assert.Equal(t, []string{out}, res.Outputs)
	assert.Equal(t, ">r1, AT content: 0.50\nAUGC\n>r2, AT content: 1.00\nAAUU\n", f.read(t, out))
}

func TestLength(t *testing.T) {
	f := newFixture(t, map[string]string{"in/mixed.fasta": ">dna1 first\nATGCAT\n>prot1\nMKVL\n"})
	_, err := f.orchestrator(StaticSelector{"in/mixed.fasta"}).Run(Request{Op: Length})
	require.NoError(t, err)
	assert.Equal(t, ">dna1 first, sequence length 6 bp\nATGCAT\n", f.read(t, filepath.Join("Output", "dna1.fasta")))
	assert.Equal(t, ">prot1, sequence length 4 aa\nMKVL\n", f.read(t, filepath.Join("Output", "prot1.fasta")))
}

func TestLengthBatch(t *testing.T) {
	f := newFixture(t, map[string]string{"in/mixed.fasta": ">dna1 first\nATGCAT\n>prot1\nMKVL\n"})
	res, err := f.orchestrator(StaticSelector{"in/mixed.fasta"}).Run(Request{Op: LengthBatch})
	require.NoError(t, err)
	out := filepath.Join("Output", "mixed.fasta")
	assert.Equal(t, []string{out}, res.Outputs)
	assert.Equal(t, ">dna1 first, sequence length 6 bp\nATGCAT\n>prot1, sequence length 4 aa\nMKVL\n", f.read(t, out))
}

func TestLengthEmptySequence(t *testing.T) {
	f := newFixture(t, map[string]string{"in/e.fasta": ">full\nATG\n>empty\n"})
	_, err := f.orchestrator(StaticSelector{"in/e.fasta"}).Run(Request{Op: Length})
	require.ErrorIs(t, err, molecule.ErrEmptySequence)
	n, _ := f.notifier.Last()
	assert.Equal(t, "Classification Error", n.Title)
	assert.Equal(t, 0, f.outputCount(t))
}

func TestCleanse(t *testing.T) {
	f := newFixture(t, map[string]string{"in/dirty.fasta": ">n1\nATNNGC-U\n>n2\nRYGG\n"})
	_, err := f.orchestrator(StaticSelector{"in/dirty.fasta"}).Run(Request{Op: Cleanse, Hint: cleanse.Nucleotide})
	require.NoError(t, err)
	assert.Equal(t, ">n1\nATGCU\n", f.read(t, filepath.Join("Output", "n1.fasta")))
	assert.Equal(t, ">n2\nGG\n", f.read(t, filepath.Join("Output", "n2.fasta")))

	f = newFixture(t, map[string]string{"in/p.fasta": ">p1\nMKXVX*\n"})
	_, err = f.orchestrator(StaticSelector{"in/p.fasta"}).Run(Request{Op: Cleanse, Hint: cleanse.Protein})
	require.NoError(t, err)
	assert.Equal(t, ">p1\nMKV*\n", f.read(t, filepath.Join("Output", "p1.fasta")))
}

func TestSplitNamingErrorWritesNothing(t *testing.T) {
	f := newFixture(t, map[string]string{"in/orphan.fasta": "ACGT\n>ok\nTT\n"})
	_, err := f.orchestrator(StaticSelector{"in/orphan.fasta"}).Run(Request{Op: Split})
	require.ErrorIs(t, err, naming.ErrEmptyIdentifier)
	n, _ := f.notifier.Last()
	assert.Equal(t, "Naming Error", n.Title)
	assert.Equal(t, 0, f.outputCount(t))
}

func TestSplitAccessionCollisionLastWins(t *testing.T) {
	f := newFixture(t, map[string]string{"in/c.fasta": ">acc1 first\nAAA\n>acc1:second\nCCC\n"})
	res, err := f.orchestrator(StaticSelector{"in/c.fasta"}).Run(Request{Op: Split})
	require.NoError(t, err)
	assert.Len(t, res.Outputs, 1)
	assert.Equal(t, ">acc1:second\nCCC\n", f.read(t, filepath.Join("Output", "acc1.fasta")))
}

func TestWriteFailureLeavesNothing(t *testing.T) {
	f := newFixture(t, map[string]string{"in/seqs.fasta": example})
	o := f.orchestrator(StaticSelector{"in/seqs.fasta"})
	o.Fs = afero.NewReadOnlyFs(f.fs)
	_, err := o.Run(Request{Op: Split})
	require.Error(t, err)
	n, _ := f.notifier.Last()
	assert.Equal(t, "Write Error", n.Title)
	assert.Equal(t, 0, f.outputCount(t))
}

// sequenceSelector hands out one path per call.
type sequenceSelector struct {
	paths []string
}

func (s *sequenceSelector) SelectOne() (string, error) {
	if len(s.paths) == 0 {
		return "", ErrCancelled
	}
	p := s.paths[0]
	s.paths = s.paths[1:]
	return p, nil
}

func (s *sequenceSelector) SelectMany() ([]string, error) {
	p, err := s.SelectOne()
	return []string{p}, err
}

func TestRunsDoNotShareRecords(t *testing.T) {
	f := newFixture(t, map[string]string{"in/two.fasta": example, "in/one.fasta": ">only\nACGT\n"})
	o := f.orchestrator(&sequenceSelector{paths: []string{"in/two.fasta", "in/one.fasta"}})
	res, err := o.Run(Request{Op: Count})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Records)
	res, err = o.Run(Request{Op: Count})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Records)
}

func TestUnknownOperation(t *testing.T) {
	f := newFixture(t, map[string]string{"in/seqs.fasta": example})
	_, err := f.orchestrator(StaticSelector{"in/seqs.fasta"}).Run(Request{Op: "align"})
	require.Error(t, err)
	n, _ := f.notifier.Last()
	assert.Equal(t, "Input Error", n.Title)
}

func TestParseOperation(t *testing.T) {
	for _, op := range Operations {
		got, err := ParseOperation(string(op))
		require.NoError(t, err)
		assert.Equal(t, op, got)
		assert.NotEmpty(t, op.Description())
	}
	_, err := ParseOperation("translate")
	assert.Error(t, err)
}
