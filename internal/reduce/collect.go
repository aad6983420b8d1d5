package reduce

import (
	"strings"

	"github.com/itsmostafa/reduceindex/internal/omh"
)

// AutoTerms returns the lowercase words of every heading command in text.
func AutoTerms(text string) []string {
	var terms []string
	for tok := range omh.Commands(text, 0) {
		if !omh.IsHeading(tok.Name) {
			continue
		}
		for _, w := range omh.Words(tok.Text) {
			terms = append(terms, strings.ToLower(w))
		}
	}
	return terms
}

// Collection is the outcome of scanning a section's index commands.
type Collection struct {
	// Kept holds surviving terms in first-seen order with original casing.
	Kept []string
	// Commands counts index commands found.
	Commands int
	// Seen counts words found across all index commands.
	Seen int
}

// CollectIndex walks the index commands of text and keeps each word whose
// lowercase form is not yet in ex. Kept words are added to ex immediately,
// so the first occurrence wins.
func CollectIndex(text string, ex *Exclusion) Collection {
	var c Collection
	for tok := range omh.IndexCommands(text, 0) {
		c.Commands++
		for _, w := range omh.Words(tok.Text) {
			c.Seen++
			if ex.Has(w) {
				continue
			}
			ex.Add(w)
			c.Kept = append(c.Kept, w)
		}
	}
	return c
}
