// Package reduce consolidates the index commands of an OMhelp document.
//
// For each $begin/$end section the reducer drops explicit index terms that
// are stopwords, that repeat a heading word (or its naive singular/plural),
// or that repeat an earlier kept term, then drops terms subsumed by a more
// specific underscore compound. The survivors replace all of the section's
// index commands with a single command placed after $section.
package reduce

import (
	"strings"

	"github.com/itsmostafa/reduceindex/internal/config"
	"github.com/itsmostafa/reduceindex/internal/omh"
	"go.uber.org/zap"
)

// Stats summarizes one Reduce call.
type Stats struct {
	Sections       int
	IndexCommands  int
	TermsSeen      int
	TermsKept      int
	TermsRedundant int
	// Untitled counts sections with no $section command.
	Untitled int
}

// Result is the reduced document.
type Result struct {
	Text    string
	Changed bool
	Stats   Stats
}

// Reducer rewrites documents. It holds no per-document state and may be
// reused.
type Reducer struct {
	stopwords    []string
	indexCommand string
	logger       *zap.Logger
}

// New creates a Reducer from cfg. A nil logger discards output.
func New(cfg *config.Config, logger *zap.Logger) *Reducer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reducer{
		stopwords:    cfg.AllStopwords(),
		indexCommand: cfg.IndexCommand,
		logger:       logger,
	}
}

// foldState is threaded through the sections of one document in order.
type foldState struct {
	exclusion *Exclusion
	out       strings.Builder
	cursor    int
	stats     Stats
}

// Reduce rewrites doc. On a malformed section it returns the
// *omh.MarkupError and no text.
func (r *Reducer) Reduce(doc string) (Result, error) {
	st := &foldState{exclusion: NewExclusion(r.stopwords)}
	st.out.Grow(len(doc))

	for sec, err := range omh.Sections(doc) {
		if err != nil {
			r.logger.Debug("aborting on malformed markup", zap.Error(err))
			return Result{}, err
		}
		r.step(st, doc, sec)
	}
	st.out.WriteString(doc[st.cursor:])

	text := st.out.String()
	return Result{
		Text:    text,
		Changed: text != doc,
		Stats:   st.stats,
	}, nil
}

// step processes one section: headings extend the exclusion set, index
// terms are collected and filtered, and the rewritten section is emitted
// after any text preceding it.
func (r *Reducer) step(st *foldState, doc string, sec omh.Section) {
	st.out.WriteString(doc[st.cursor:sec.Span.Start])

	for _, w := range AutoTerms(sec.Text) {
		st.exclusion.AddHeading(w)
	}

	coll := CollectIndex(sec.Text, st.exclusion)
	kept := RemoveRedundant(coll.Kept)

	text, hasTitle := RewriteSection(sec, kept, r.indexCommand)
	st.out.WriteString(text)
	st.cursor = sec.Span.End

	st.stats.Sections++
	st.stats.IndexCommands += coll.Commands
	st.stats.TermsSeen += coll.Seen
	st.stats.TermsKept += len(kept)
	st.stats.TermsRedundant += len(coll.Kept) - len(kept)
	if !hasTitle {
		st.stats.Untitled++
		if coll.Commands > 0 {
			r.logger.Warn("section has no $section command; index placed after $begin",
				zap.String("section", sec.Name))
		}
	}

	r.logger.Debug("reduced section",
		zap.String("section", sec.Name),
		zap.Int("index_commands", coll.Commands),
		zap.Strings("kept", kept),
		zap.Int("excluded", st.exclusion.Len()))
}
