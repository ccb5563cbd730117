// Package logging builds the charmbracelet logger shared by the commands.
package logging

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// timestampWriter prefixes each flushed line with an RFC3339 timestamp.
type timestampWriter struct {
	w   io.Writer
	buf bytes.Buffer
	mu  sync.Mutex
	now func() time.Time
}

// Write buffers bytes until a newline is found; for each full line, write a timestamped
// line to the underlying writer. Partial lines are kept in the buffer.
func (t *timestampWriter) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, _ := t.buf.Write(p)
	for {
		line, err := t.buf.ReadString('\n')
		if err != nil {
			// put the partial line back for the next write
			t.buf.Reset()
			t.buf.WriteString(line)
			break
		}
		ts := t.now().Format(time.RFC3339)
		if _, err := t.w.Write([]byte(ts + " " + line)); err != nil {
			return n, err
		}
	}
	return n, nil
}

// terminalWriter exposes an Fd method so the logger can detect a TTY through
// the wrapping writers.
type terminalWriter struct {
	w  io.Writer
	fd uintptr
}

func (tw *terminalWriter) Write(p []byte) (int, error) { return tw.w.Write(p) }

func (tw *terminalWriter) Fd() uintptr { return tw.fd }

// Options configures New.
type Options struct {
	// Out defaults to os.Stderr.
	Out     io.Writer
	LogFile string
	Level   string
	Verbose bool
	Prefix  string
}

// ParseLevel maps a config level name to a log level. Unknown names give
// InfoLevel and false.
func ParseLevel(s string) (log.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel, true
	case "info", "":
		return log.InfoLevel, true
	case "warn", "warning":
		return log.WarnLevel, true
	case "error":
		return log.ErrorLevel, true
	}
	return log.InfoLevel, false
}

// New returns a logger and a function closing the log file, if any. A log
// file that cannot be opened is reported and logging continues on Out only.
func New(o Options) (*log.Logger, func() error) {
	out := o.Out
	if out == nil {
		out = os.Stderr
	}
	closer := func() error { return nil }
	var fileErr error
	if o.LogFile != "" {
		f, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			out = io.MultiWriter(out, f)
			closer = f.Close
		} else {
			fileErr = err
		}
	}
	tw := &timestampWriter{w: out, now: time.Now}
	logger := log.NewWithOptions(&terminalWriter{w: tw, fd: os.Stderr.Fd()}, log.Options{Prefix: o.Prefix})

	level, ok := ParseLevel(o.Level)
	if o.Verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	if !ok && !o.Verbose {
		logger.Warn("unknown log_level in config, defaulting to info", "provided", o.Level)
	}
	if fileErr != nil {
		logger.Warn("log_file specified but could not be opened; logging to stderr only", "path", o.LogFile, "err", fileErr)
	}
	return logger, closer
}
