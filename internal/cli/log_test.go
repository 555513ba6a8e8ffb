package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	p := newProgress(logger)
	p.done("Explored 42 paths")

	out := buf.String()
	if !strings.Contains(out, "Explored 42 paths") {
		t.Errorf("output missing message: %q", out)
	}
	// Elapsed duration is appended in parentheses.
	if !strings.Contains(out, "(") || !strings.Contains(out, ")") {
		t.Errorf("output missing elapsed time: %q", out)
	}
}
