package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmartin/banktracker/internal/types"
)

func TestFilterNew(t *testing.T) {
	existing := NewLinkSet([]string{"https://x/a"})
	candidates := []types.Article{
		{Title: "dup", Link: "https://x/a"},
		{Title: "new", Link: "https://x/b"},
	}

	fresh := FilterNew(candidates, existing)
	require.Len(t, fresh, 1)
	assert.Equal(t, "https://x/b", fresh[0].Link)
}

func TestFilterNew_Idempotent(t *testing.T) {
	candidates := []types.Article{
		{Link: "https://x/a"},
		{Link: "https://x/b"},
	}

	// First pass against an empty store: everything is new.
	existing := NewLinkSet(nil)
	first := FilterNew(candidates, existing)
	require.Len(t, first, 2)

	// Second pass with those links persisted: nothing is new.
	links := make([]string, 0, len(first))
	for _, a := range first {
		links = append(links, a.Link)
	}
	second := FilterNew(candidates, NewLinkSet(links))
	assert.Empty(t, second)
}

func TestFilterNew_ExactMatchOnly(t *testing.T) {
	// No fuzzy URL canonicalization beyond what normalization already did.
	existing := NewLinkSet([]string{"https://x/a"})
	fresh := FilterNew([]types.Article{{Link: "https://x/a/"}}, existing)
	assert.Len(t, fresh, 1)
}

func TestFilterNew_PreservesOrder(t *testing.T) {
	candidates := []types.Article{
		{Link: "https://x/1"},
		{Link: "https://x/2"},
		{Link: "https://x/3"},
	}
	fresh := FilterNew(candidates, NewLinkSet([]string{"https://x/2"}))
	require.Len(t, fresh, 2)
	assert.Equal(t, "https://x/1", fresh[0].Link)
	assert.Equal(t, "https://x/3", fresh[1].Link)
}
