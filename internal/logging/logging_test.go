package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"":        log.InfoLevel,
		"nope":    log.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Formatter = ParseFormat("logfmt")
	l := New(&buf, opts)

	l.Info("hidden")
	l.Error("shown", "op", "createUser")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info to be filtered at warn level; got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "op=createUser") {
		t.Fatalf("expected error line with op field; got %q", out)
	}
}

func TestOpenFile_AppendsToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todos.log")
	opts := DefaultOptions()
	opts.Level = log.DebugLevel
	l, f, err := OpenFile(path, opts)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	l.Debug("hello file")
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "hello file") {
		t.Fatalf("expected log line in file; got %q", string(b))
	}
}
