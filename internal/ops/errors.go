package ops

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection covers a cancelled selection, a file without the
	// .fasta extension and too few files for a multi-file operation.
	ErrInvalidSelection = errors.New("invalid file selection")
	// ErrSequenceCount is returned when a single-sequence operation does not
	// get exactly one record.
	ErrSequenceCount = errors.New("exactly one sequence is required")
	// ErrSequenceType is returned when a protein reaches a nucleotide-only
	// operation.
	ErrSequenceType = errors.New("nucleotide sequence required")
	// ErrCancelled is returned by a Selector when the user cancels.
	ErrCancelled = errors.New("selection cancelled")
)

// Error is an operation failure together with the notification the user
// sees. Silent errors abort without a notification.
type Error struct {
	Title   string
	Message string
	Silent  bool
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func silent(err error) *Error {
	return &Error{Silent: true, Err: err}
}

func notified(title, message string, err error) *Error {
	return &Error{Title: title, Message: message, Err: err}
}
