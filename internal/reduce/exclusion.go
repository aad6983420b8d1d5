package reduce

import "strings"

// Exclusion is the set of lowercase terms an explicit index command may not
// repeat. It is seeded with stopwords and only ever grows.
type Exclusion struct {
	words map[string]struct{}
}

// NewExclusion returns a set seeded with stopwords.
func NewExclusion(stopwords []string) *Exclusion {
	e := &Exclusion{words: make(map[string]struct{}, len(stopwords))}
	for _, w := range stopwords {
		e.Add(w)
	}
	return e
}

// Has reports whether word, case folded, is excluded.
func (e *Exclusion) Has(word string) bool {
	_, ok := e.words[strings.ToLower(word)]
	return ok
}

// Add excludes word.
func (e *Exclusion) Add(word string) {
	e.words[strings.ToLower(word)] = struct{}{}
}

// AddHeading excludes a heading word together with its naive singular or
// plural form: a trailing "s" is stripped if present, otherwise appended.
// This is not stemming; "indices" does not exclude "index".
func (e *Exclusion) AddHeading(word string) {
	lower := strings.ToLower(word)
	e.Add(lower)
	if strings.HasSuffix(lower, "s") {
		if singular := strings.TrimSuffix(lower, "s"); singular != "" {
			e.Add(singular)
		}
	} else {
		e.Add(lower + "s")
	}
}

// Len returns the number of excluded terms.
func (e *Exclusion) Len() int { return len(e.words) }
