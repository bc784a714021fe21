package items

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NewCollator returns the title collator: Brazilian Portuguese rules,
// ignoring case and accents. A Collator is not safe for concurrent use.
func NewCollator() *collate.Collator {
	return collate.New(language.BrazilianPortuguese, collate.Loose)
}

// CompareTitles orders two titles with the title collator.
func CompareTitles(a, b string) int {
	return NewCollator().CompareString(a, b)
}

// SortByTitle sorts records in place by title. Records whose titles
// collate equal keep their relative order.
func SortByTitle(list []Item) {
	c := NewCollator()
	slices.SortStableFunc(list, func(a, b Item) int {
		return c.CompareString(a.Title, b.Title)
	})
}

// SortedByTitle returns a sorted copy of the records.
func SortedByTitle(list []Item) []Item {
	out := slices.Clone(list)
	if out == nil {
		out = []Item{}
	}
	SortByTitle(out)
	return out
}
