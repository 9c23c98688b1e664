package shared

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortSpanish sorts items in place by key using Spanish collation rules,
// so "Ñame" sorts after "Nuez" and accents do not split groups.
func SortSpanish[T any](items []T, key func(T) string) {
	// collate.Collator keeps internal buffers and is not safe for concurrent use
	c := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(key(items[i]), key(items[j])) < 0
	})
}
