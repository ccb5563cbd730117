// Package naming derives output file paths from FASTA headers and input
// file paths.
package naming

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Ext is the extension given to files named after a header.
const Ext = ".fasta"

// ErrEmptyIdentifier is returned when no file name can be derived.
var ErrEmptyIdentifier = errors.New("empty identifier")

// NamingError records the identifier that could not be resolved.
type NamingError struct {
	Identifier string
	Err        error
}

func (e *NamingError) Error() string {
	return fmt.Sprintf("cannot derive output name from %q: %v", e.Identifier, e.Err)
}

func (e *NamingError) Unwrap() error { return e.Err }

// IsPath reports whether identifier is a file path rather than a header.
// Anything starting with the header marker is a header.
func IsPath(identifier string) bool {
	if strings.HasPrefix(strings.TrimSpace(identifier), ">") {
		return false
	}
	return strings.ContainsRune(identifier, '/') || strings.ContainsRune(identifier, os.PathSeparator)
}

// fileSafe keeps an accession inside the output directory.
var fileSafe = strings.NewReplacer("/", "_", string(os.PathSeparator), "_")

// Accession returns the first token of a header once the marker is removed
// and colons are treated as spaces. ">acc123:desc extra" gives "acc123".
func Accession(header string) string {
	h := strings.TrimLeft(strings.TrimSpace(header), ">")
	h = strings.ReplaceAll(h, ":", " ")
	fields := strings.Fields(h)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ResolveOutputPath returns the output path for identifier inside outputDir.
// A path keeps its base name and extension; a header becomes
// "<accession>.fasta".
func ResolveOutputPath(identifier, outputDir string) (string, error) {
	if strings.TrimSpace(identifier) == "" {
		return "", &NamingError{Identifier: identifier, Err: ErrEmptyIdentifier}
	}
	var name string
	if IsPath(identifier) {
		name = filepath.Base(filepath.FromSlash(identifier))
		if strings.HasSuffix(identifier, "/") || name == "." || name == string(os.PathSeparator) {
			name = ""
		}
	} else if acc := Accession(identifier); acc != "" {
		name = fileSafe.Replace(acc) + Ext
	}
	if name == "" {
		return "", &NamingError{Identifier: identifier, Err: ErrEmptyIdentifier}
	}
	return filepath.Join(outputDir, name), nil
}
