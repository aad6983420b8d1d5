package omh

import (
	"iter"
	"regexp"
)

// Commands yields every "$cmd arg$$" match in text starting at offset.
// Spans are relative to text, so a caller can resume from any token's end.
func Commands(text string, offset int) iter.Seq[Token] {
	return matches(text, offset, commandPattern, func(loc []int) Token {
		return Token{
			Kind: KindCommand,
			Name: group(text, loc, commandCmd),
			Text: group(text, loc, commandArg),
			Span: Span{Start: loc[0], End: loc[1]},
		}
	})
}

// IndexCommands yields every index-family command ($index, $mindex, ...)
// in text starting at offset.
func IndexCommands(text string, offset int) iter.Seq[Token] {
	return matches(text, offset, indexPattern, func(loc []int) Token {
		return Token{
			Kind: KindIndex,
			Name: group(text, loc, indexQual) + "index",
			Text: group(text, loc, indexArg),
			Span: Span{Start: loc[0], End: loc[1]},
		}
	})
}

// FirstCommand returns the first command named name, if any.
func FirstCommand(text, name string) (Token, bool) {
	for tok := range Commands(text, 0) {
		if tok.Name == name {
			return tok, true
		}
	}
	return Token{}, false
}

func matches(text string, offset int, re *regexp.Regexp, build func(loc []int) Token) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		pos := offset
		for pos <= len(text) {
			loc := re.FindStringSubmatchIndex(text[pos:])
			if loc == nil {
				return
			}
			for i := range loc {
				if loc[i] >= 0 {
					loc[i] += pos
				}
			}
			if !yield(build(loc)) {
				return
			}
			// Every pattern consumes at least "$$", so this always advances
			pos = loc[1]
		}
	}
}
