// Package dedupe filters candidate articles against the set of links already in storage.
package dedupe

import (
	"github.com/bmartin/banktracker/internal/types"
)

// LinkSet is an immutable snapshot of the links currently stored, read once
// per aggregation run. Equality is exact string match on the resolved link.
type LinkSet map[string]struct{}

// NewLinkSet builds a LinkSet from a slice of stored links.
func NewLinkSet(links []string) LinkSet {
	set := make(LinkSet, len(links))
	for _, l := range links {
		set[l] = struct{}{}
	}
	return set
}

// Contains reports whether the link is already stored.
func (s LinkSet) Contains(link string) bool {
	_, ok := s[link]
	return ok
}

// FilterNew returns the candidates whose link is not in the existing set.
// Order is preserved.
func FilterNew(candidates []types.Article, existing LinkSet) []types.Article {
	fresh := make([]types.Article, 0, len(candidates))
	for _, a := range candidates {
		if !existing.Contains(a.Link) {
			fresh = append(fresh, a)
		}
	}
	return fresh
}
