package fasta

// Package fasta parses FASTA text into header-keyed record sets and writes
// records back out. Parsing is line based and permissive: any
// line containing the marker starts a record, blank lines are skipped and
// duplicate headers overwrite earlier ones.

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// Marker is the character that identifies a header line.
const Marker = ">"

// maxLine bounds a single input line; whole chromosomes on one line fit.
const maxLine = 64 << 20

// Record is a single FASTA record. Header keeps its leading marker.
type Record struct {
	Header   string
	Sequence string
	// Order is the position at which Header was first seen.
	Order int
}

// RecordSet is an insertion-ordered mapping from header to record. A later
// record with an identical header replaces the sequence of the earlier one
// and keeps its position.
type RecordSet struct {
	index   map[string]int
	records []Record
}

// NewRecordSet returns an empty record set.
func NewRecordSet() *RecordSet {
	return &RecordSet{index: make(map[string]int)}
}

// Put stores seq under header, overwriting any previous sequence.
func (s *RecordSet) Put(header, seq string) {
	if i, ok := s.index[header]; ok {
		s.records[i].Sequence = seq
		return
	}
	s.index[header] = len(s.records)
	s.records = append(s.records, Record{Header: header, Sequence: seq, Order: len(s.records)})
}

// Get returns the record stored under header.
func (s *RecordSet) Get(header string) (Record, bool) {
	i, ok := s.index[header]
	if !ok {
		return Record{}, false
	}
	return s.records[i], true
}

// Len returns the number of distinct headers.
func (s *RecordSet) Len() int { return len(s.records) }

// Records returns a copy of the records in order.
func (s *RecordSet) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Headers returns the headers in order.
func (s *RecordSet) Headers() []string {
	out := make([]string, len(s.records))
	for i, r := range s.records {
		out[i] = r.Header
	}
	return out
}

// parser holds the scan state for one input.
type parser struct {
	set    *RecordSet
	header string
	seq    strings.Builder
}

func (p *parser) line(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}
	if strings.Contains(line, Marker) {
		p.header = line
		p.seq.Reset()
	} else {
		p.seq.WriteString(strings.ToUpper(line))
	}
	p.set.Put(p.header, p.seq.String())
}

// Parse reads FASTA text from r into set. Sequence lines seen before the
// first header are stored under the empty header.
func Parse(r io.Reader, set *RecordSet) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	p := parser{set: set}
	for scanner.Scan() {
		p.line(scanner.Text())
	}
	return scanner.Err()
}

// ParseLines is Parse over lines that are already split.
func ParseLines(lines []string, set *RecordSet) {
	p := parser{set: set}
	for _, l := range lines {
		p.line(l)
	}
}

// ParseFile parses the file at path on fsys into set.
func ParseFile(fsys afero.Fs, path string, set *RecordSet) error {
	f, err := fsys.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := Parse(f, set); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// ParseFiles parses paths in order into a new record set.
func ParseFiles(fsys afero.Fs, paths ...string) (*RecordSet, error) {
	set := NewRecordSet()
	for _, p := range paths {
		if err := ParseFile(fsys, p, set); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Write writes records as header and sequence line pairs.
func Write(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		if _, err := fmt.Fprintf(bw, "%s\n%s\n", r.Header, r.Sequence); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Format returns the serialized form of records.
func Format(records ...Record) []byte {
	var buf bytes.Buffer
	_ = Write(&buf, records)
	return buf.Bytes()
}
