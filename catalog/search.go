package catalog

import "github.com/sahilm/fuzzy"

type nameSource []string

func (s nameSource) String(i int) string { return s[i] }
func (s nameSource) Len() int            { return len(s) }

// FuzzyFilter keeps the items whose name fuzzily matches query, best first.
// An empty query keeps everything in catalog order.
func FuzzyFilter[T any](items []T, query string, name func(T) string) []T {
	if query == "" {
		return items
	}
	names := make(nameSource, len(items))
	for i, it := range items {
		names[i] = name(it)
	}
	matches := fuzzy.FindFrom(query, names)
	out := make([]T, 0, len(matches))
	for _, m := range matches {
		out = append(out, items[m.Index])
	}
	return out
}
