package reduce

import (
	"strings"

	"github.com/itsmostafa/reduceindex/internal/omh"
)

// RewriteSection removes every index command from sec and, when terms is
// non-empty, inserts one consolidated index command on its own line after
// the section's first $section command. The inserted line uses the
// section's line terminator and is always terminated, so a second pass
// yields the same text. A section without a $section
// command gets the consolidated command after its begin marker; hasTitle
// reports which case applied.
func RewriteSection(sec omh.Section, terms []string, indexCommand string) (text string, hasTitle bool) {
	split := sec.Begin.Span.End
	if tok, ok := omh.FirstCommand(sec.Text, "section"); ok {
		split = tok.Span.End
		hasTitle = true
	}

	eol := lineEnding(sec.Text)
	tail := StripIndex(sec.Text[split:])

	var b strings.Builder
	b.Grow(len(sec.Text))
	b.WriteString(StripIndex(sec.Text[:split]))
	if len(terms) > 0 {
		b.WriteString(eol)
		b.WriteString(omh.FormatIndex(indexCommand, terms))
		if !strings.HasPrefix(tail, eol) {
			b.WriteString(eol)
		}
	}
	b.WriteString(tail)
	return b.String(), hasTitle
}

// lineEnding returns "\r\n" for CRLF text and "\n" otherwise.
func lineEnding(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// StripIndex deletes every index command in text together with a single
// line terminator ("\n" or "\r\n") directly following it.
func StripIndex(text string) string {
	var b strings.Builder
	last := 0
	for tok := range omh.IndexCommands(text, 0) {
		b.WriteString(text[last:tok.Span.Start])
		last = tok.Span.End
		switch {
		case strings.HasPrefix(text[last:], "\r\n"):
			last += 2
		case strings.HasPrefix(text[last:], "\n"):
			last++
		}
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}
