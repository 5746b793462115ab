package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmartin/banktracker/internal/types"
)

func TestParseDate_StandardFormats(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"long month", "December 5, 2024", time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC)},
		{"short month", "Dec 5, 2024", time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC)},
		{"iso date", "2024-12-05", time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC)},
		{"day first", "5 December 2024", time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDate(tt.in))
		})
	}
}

func TestParseDate_IrregularWhitespace(t *testing.T) {
	// CIBC pads single-digit days with an extra space
	got := ParseDate("December  5, 2024")
	assert.Equal(t, time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC), got)

	got = ParseDate("  December 5,   2024 ")
	assert.Equal(t, time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_FallbackToNow(t *testing.T) {
	start := time.Now().UTC()

	for _, in := range []string{"", "not a date", "sometime  last	week"} {
		got := ParseDate(in)
		assert.False(t, got.Before(start), "fallback date should not be earlier than the run start for input %q", in)
	}
}

func TestResolveLink(t *testing.T) {
	tests := []struct {
		name string
		base string
		link string
		want string
	}{
		{"absolute untouched", "https://www.rbc.com", "https://example.com/a", "https://example.com/a"},
		{"relative with slash", "https://www.rbc.com", "/newsroom/item.html", "https://www.rbc.com/newsroom/item.html"},
		{"relative without slash", "https://www.rbc.com", "newsroom/item.html", "https://www.rbc.com/newsroom/item.html"},
		{"base trailing slash", "https://cibc.mediaroom.com/", "/2024-12-05-release", "https://cibc.mediaroom.com/2024-12-05-release"},
		{"empty link", "https://www.rbc.com", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLink(tt.base, tt.link))
		})
	}
}

func TestToArticle(t *testing.T) {
	c := Candidate{
		Title:    "  Bank launches automation initiative  ",
		Link:     "/news/automation.html",
		DateText: "January 3, 2025",
		Summary:  "",
	}

	a := ToArticle(c, "https://www.rbc.com", "RBC Newsroom", types.BankRBC)
	require.Equal(t, "Bank launches automation initiative", a.Title)
	assert.Equal(t, "https://www.rbc.com/news/automation.html", a.Link)
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), a.PublishDate)
	assert.Equal(t, "RBC Newsroom", a.Source)
	assert.Equal(t, types.BankRBC, a.BankCode)
	assert.Equal(t, "", a.Summary)
	assert.Equal(t, 0.0, a.AIRelevanceScore)
}

func TestUsable(t *testing.T) {
	assert.True(t, Usable(Candidate{Title: "t", Link: "l"}))
	assert.False(t, Usable(Candidate{Title: "", Link: "l"}))
	assert.False(t, Usable(Candidate{Title: "t", Link: "  "}))
}
