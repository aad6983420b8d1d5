package reduce

import "strings"

// RemoveRedundant drops every term that another term in the list extends
// with an underscore, as "vector" is extended by "ad_vector" or
// "vector_size". Order is preserved.
func RemoveRedundant(terms []string) []string {
	out := make([]string, 0, len(terms))
	for i, t1 := range terms {
		if !subsumed(i, t1, terms) {
			out = append(out, t1)
		}
	}
	return out
}

func subsumed(i int, t1 string, terms []string) bool {
	prefix := t1 + "_"
	suffix := "_" + t1
	for j, t2 := range terms {
		if i == j {
			continue
		}
		if strings.HasPrefix(t2, prefix) || strings.HasSuffix(t2, suffix) {
			return true
		}
	}
	return false
}
