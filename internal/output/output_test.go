package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/itsmostafa/reduceindex/internal/reduce"
)

func TestFormatDone(t *testing.T) {
	tests := []struct {
		changed bool
		want    string
	}{
		{true, "reduced"},
		{false, "unchanged"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		FormatDone(&buf, "omh/optimize.omh", tt.changed)
		out := buf.String()
		if !strings.Contains(out, "omh/optimize.omh") || !strings.Contains(out, tt.want) {
			t.Errorf("FormatDone(changed=%v) = %q", tt.changed, out)
		}
		if strings.Count(out, "\n") != 1 {
			t.Errorf("expected a single line, got %q", out)
		}
	}
}

func TestFormatStats(t *testing.T) {
	var buf bytes.Buffer
	FormatStats(&buf, reduce.Stats{Sections: 3, Untitled: 2, IndexCommands: 4, TermsSeen: 9, TermsKept: 5, TermsRedundant: 1})
	out := buf.String()
	if !strings.Contains(out, "5/9") {
		t.Errorf("FormatStats() = %q", out)
	}
	if !strings.Contains(out, "Untitled: 2") {
		t.Errorf("FormatStats() does not report untitled sections: %q", out)
	}
}

func TestFormatError(t *testing.T) {
	var buf bytes.Buffer
	FormatError(&buf, errors.New("boom"))
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("FormatError() = %q", buf.String())
	}
}
