package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestTimestampWriterKeepsPartialLines(t *testing.T) {
	var out bytes.Buffer
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tw := &timestampWriter{w: &out, now: func() time.Time { return fixed }}
	_, _ = tw.Write([]byte("first li"))
	if out.Len() != 0 {
		t.Fatalf("partial line flushed early: %q", out.String())
	}
	_, _ = tw.Write([]byte("ne\nsecond\n"))
	want := "2024-05-01T12:00:00Z first line\n2024-05-01T12:00:00Z second\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{"debug": log.DebugLevel, "": log.InfoLevel, "WARNING": log.WarnLevel, "error": log.ErrorLevel}
	for in, want := range cases {
		got, ok := ParseLevel(in)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, ok)
		}
	}
	if got, ok := ParseLevel("chatty"); ok || got != log.InfoLevel {
		t.Fatalf("expected info fallback, got %v %v", got, ok)
	}
}

func TestNewLevelsAndFile(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "run.log")
	logger, closeLog := New(Options{Out: &out, LogFile: path, Level: "warn"})
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "hidden") || !strings.Contains(out.String(), "shown") {
		t.Fatalf("unexpected output %q", out.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "shown") {
		t.Fatalf("log file missing entry: %q", data)
	}
}

func TestNewVerboseAndUnknownLevel(t *testing.T) {
	var out bytes.Buffer
	logger, _ := New(Options{Out: &out, Level: "chatty"})
	if !strings.Contains(out.String(), "unknown log_level") {
		t.Fatalf("expected warning about level, got %q", out.String())
	}
	if logger.GetLevel() != log.InfoLevel {
		t.Fatalf("expected info level, got %v", logger.GetLevel())
	}
	logger, _ = New(Options{Out: &out, Level: "error", Verbose: true})
	if logger.GetLevel() != log.DebugLevel {
		t.Fatalf("verbose should force debug, got %v", logger.GetLevel())
	}
}
