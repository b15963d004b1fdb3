// Package words holds the drawing game's word lists, grouped by category.
package words

import (
	"slices"
	"strings"
)

// Bank is an immutable category -> words index.
type Bank struct {
	categories []string
	words      map[string][]string
}

// NewBank copies lists, dropping blank words and empty categories.
// Category names are lower-cased.
func NewBank(lists map[string][]string) *Bank {
	b := &Bank{words: make(map[string][]string, len(lists))}
	for cat, ws := range lists {
		cat = strings.ToLower(strings.TrimSpace(cat))
		if cat == "" {
			continue
		}
		for _, w := range ws {
			if w = strings.TrimSpace(w); w != "" {
				b.words[cat] = append(b.words[cat], w)
			}
		}
	}
	for cat := range b.words {
		b.categories = append(b.categories, cat)
	}
	slices.Sort(b.categories)
	return b
}

// Categories returns the category names in sorted order.
func (b *Bank) Categories() []string {
	return slices.Clone(b.categories)
}

func (b *Bank) Words(category string) []string {
	return slices.Clone(b.words[strings.ToLower(strings.TrimSpace(category))])
}

// Pool is the union of the requested categories, in request order. Unknown
// categories are skipped; if none are requested or none are known, every
// category is used.
func (b *Bank) Pool(categories []string) []string {
	var pool []string
	for _, cat := range categories {
		pool = append(pool, b.words[strings.ToLower(strings.TrimSpace(cat))]...)
	}
	if len(pool) > 0 {
		return pool
	}
	for _, cat := range b.categories {
		pool = append(pool, b.words[cat]...)
	}
	return pool
}

func (b *Bank) Len() int {
	n := 0
	for _, ws := range b.words {
		n += len(ws)
	}
	return n
}

// Lists returns a copy of the bank's contents.
func (b *Bank) Lists() map[string][]string {
	out := make(map[string][]string, len(b.words))
	for cat, ws := range b.words {
		out[cat] = slices.Clone(ws)
	}
	return out
}
