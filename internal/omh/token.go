package omh

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Marker introduces every OMhelp command.
const Marker = "$"

// Kind identifies what a Token was matched from.
type Kind int

const (
	KindBegin Kind = iota
	KindEnd
	KindCommand
	KindIndex
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindCommand:
		return "command"
	case KindIndex:
		return "index"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Span is a half-open byte range [Start, End) into some text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Shift returns the span moved right by n bytes.
func (s Span) Shift(n int) Span { return Span{Start: s.Start + n, End: s.End + n} }

// Token is one structured markup match.
type Token struct {
	Kind Kind
	// Name is the command name ("section", "head", "mindex", ...) or, for
	// begin tokens, the section name.
	Name string
	// Text is the argument text between the command word and "$$".
	Text string
	Span Span
}

var (
	beginPattern   = regexp.MustCompile(`\$begin\s+(?P<name>[^$]*)\$\$`)
	endPattern     = regexp.MustCompile(`\$end\b`)
	commandPattern = regexp.MustCompile(`\$(?P<cmd>[a-z]+) (?P<arg>[^$]*)\$\$`)
	indexPattern   = regexp.MustCompile(`\$(?P<qual>[a-z]?)index (?P<arg>[^$]*)\$\$`)

	// IndexCommandPattern validates a consolidated index command name.
	IndexCommandPattern = regexp.MustCompile(`^[a-z]?index$`)
)

var (
	beginName  = beginPattern.SubexpIndex("name")
	commandCmd = commandPattern.SubexpIndex("cmd")
	commandArg = commandPattern.SubexpIndex("arg")
	indexQual  = indexPattern.SubexpIndex("qual")
	indexArg   = indexPattern.SubexpIndex("arg")
)

// group returns the text of submatch i from a FindStringSubmatchIndex result.
func group(text string, loc []int, i int) string {
	if i < 0 || loc[2*i] < 0 {
		return ""
	}
	return text[loc[2*i]:loc[2*i+1]]
}

// FormatIndex renders a consolidated index command listing terms.
func FormatIndex(command string, terms []string) string {
	return Marker + command + " " + strings.Join(terms, " ") + Marker + Marker
}

// IsHeading reports whether a command contributes to a section's auto list.
func IsHeading(name string) bool {
	switch name {
	case "section", "head", "subhead":
		return true
	}
	return false
}

// Words splits command argument text on whitespace and commas.
func Words(arg string) []string {
	return strings.FieldsFunc(arg, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
