package ops

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Lakshanj98/Fasta-Analyzer/internal/fasta"
)

// output is one rendered file waiting to be written.
type output struct {
	path string
	data []byte
}

// stage collects the outputs of one operation so nothing touches the disk
// until every record has been transformed and named.
type stage struct {
	outputs []output
}

func (s *stage) add(path string, records ...fasta.Record) {
	s.outputs = append(s.outputs, output{path: path, data: fasta.Format(records...)})
}

// paths returns the distinct output paths in write order.
func (s *stage) paths() []string {
	seen := make(map[string]bool, len(s.outputs))
	var out []string
	for _, o := range s.outputs {
		if !seen[o.path] {
			seen[o.path] = true
			out = append(out, o.path)
		}
	}
	return out
}

// commit writes every output to a temporary file next to its destination
// and only then renames them into place. A destination that already exists
// is first moved aside to a backup. If any step fails, the temporaries are
// removed and every destination is put back the way it was: backups are
// restored and files that did not exist before are removed. Outputs sharing
// a path are renamed in order, so the last one wins.
func (s *stage) commit(fsys afero.Fs) error {
	temps := make([]string, 0, len(s.outputs))
	cleanup := func() {
		for _, t := range temps {
			_ = fsys.Remove(t)
		}
	}
	for _, o := range s.outputs {
		dir := filepath.Dir(o.path)
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			cleanup()
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
		tmp, err := afero.TempFile(fsys, dir, ".fastaproc-*.tmp")
		if err != nil {
			cleanup()
			return fmt.Errorf("create temp file in %s: %w", dir, err)
		}
		temps = append(temps, tmp.Name())
		if _, err := tmp.Write(o.data); err != nil {
			tmp.Close()
			cleanup()
			return fmt.Errorf("write %s: %w", o.path, err)
		}
		if err := tmp.Close(); err != nil {
			cleanup()
			return fmt.Errorf("close %s: %w", o.path, err)
		}
		// temp files are created 0600
		if err := fsys.Chmod(tmp.Name(), 0o644); err != nil {
			cleanup()
			return fmt.Errorf("chmod %s: %w", o.path, err)
		}
	}

	var placed []placement
	seen := make(map[string]bool, len(s.outputs))
	rollback := func() {
		for i := len(placed) - 1; i >= 0; i-- {
			p := placed[i]
			_ = fsys.Remove(p.path)
			if p.backup != "" {
				_ = fsys.Rename(p.backup, p.path)
			}
		}
	}
	for i, o := range s.outputs {
		if !seen[o.path] {
			seen[o.path] = true
			p, err := setAside(fsys, o.path)
			if err != nil {
				rollback()
				temps = temps[i:]
				cleanup()
				return err
			}
			placed = append(placed, p)
		}
		if err := fsys.Rename(temps[i], o.path); err != nil {
			rollback()
			temps = temps[i:]
			cleanup()
			return fmt.Errorf("rename into %s: %w", o.path, err)
		}
	}
	for _, p := range placed {
		if p.backup != "" {
			_ = fsys.Remove(p.backup)
		}
	}
	return nil
}

// placement is a destination touched by commit and where its previous
// content was moved, if it had any.
type placement struct {
	path   string
	backup string
}

// setAside moves an existing file at path to a backup in the same directory.
func setAside(fsys afero.Fs, path string) (placement, error) {
	p := placement{path: path}
	if _, err := fsys.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("stat %s: %w", path, err)
	}
	bak, err := afero.TempFile(fsys, filepath.Dir(path), ".fastaproc-*.bak")
	if err != nil {
		return p, fmt.Errorf("create backup for %s: %w", path, err)
	}
	name := bak.Name()
	bak.Close()
	if err := fsys.Rename(path, name); err != nil {
		_ = fsys.Remove(name)
		return p, fmt.Errorf("back up %s: %w", path, err)
	}
	p.backup = name
	return p, nil
}
