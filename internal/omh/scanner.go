package omh

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

var (
	// ErrUnterminated is returned when a begin marker has no matching end marker.
	ErrUnterminated = errors.New("no $end follows $begin")
	// ErrEndBeforeBegin is returned when an end marker appears before the next begin marker.
	ErrEndBeforeBegin = errors.New("$end appears before $begin")
)

// MarkupError reports a malformed section structure.
type MarkupError struct {
	Section string
	Offset  int
	Err     error
}

func (e *MarkupError) Error() string {
	return fmt.Sprintf("section %q at byte %d: %v", e.Section, e.Offset, e.Err)
}

func (e *MarkupError) Unwrap() error { return e.Err }

// Section is one $begin ... $end unit of a document.
type Section struct {
	Name string
	// Span locates the section in the document, from the begin marker
	// through the end of the end marker.
	Span Span
	// Text is the document text covered by Span.
	Text string
	// Begin and End are the section's markers, with spans relative to Text.
	Begin Token
	End   Token
}

// NextSection returns the first section that starts at or after cursor.
// ok is false when the remaining document has no begin marker.
func NextSection(doc string, cursor int) (sec Section, ok bool, err error) {
	rest := doc[cursor:]

	loc := beginPattern.FindStringSubmatchIndex(rest)
	if loc == nil {
		return Section{}, false, nil
	}
	name := strings.TrimSpace(group(rest, loc, beginName))
	begin := Span{Start: loc[0], End: loc[1]}.Shift(cursor)

	// The nearest end marker must belong to this section
	if first := endPattern.FindStringIndex(rest); first != nil && first[0]+cursor < begin.Start {
		return Section{}, false, &MarkupError{Section: name, Offset: first[0] + cursor, Err: ErrEndBeforeBegin}
	}

	end := endPattern.FindStringIndex(doc[begin.End:])
	if end == nil {
		return Section{}, false, &MarkupError{Section: name, Offset: begin.Start, Err: ErrUnterminated}
	}

	span := Span{Start: begin.Start, End: begin.End + end[1]}
	endLen := end[1] - end[0]
	return Section{
		Name: name,
		Span: span,
		Text: doc[span.Start:span.End],
		Begin: Token{
			Kind: KindBegin,
			Name: name,
			Span: Span{Start: 0, End: begin.Len()},
		},
		End: Token{
			Kind: KindEnd,
			Name: "end",
			Span: Span{Start: span.Len() - endLen, End: span.Len()},
		},
	}, true, nil
}

// Sections yields every section of doc in order. A malformed section is
// yielded as an error and ends the sequence.
func Sections(doc string) iter.Seq2[Section, error] {
	return func(yield func(Section, error) bool) {
		cursor := 0
		for {
			sec, ok, err := NextSection(doc, cursor)
			if err != nil {
				yield(Section{}, err)
				return
			}
			if !ok {
				return
			}
			if !yield(sec, nil) {
				return
			}
			cursor = sec.Span.End
		}
	}
}
