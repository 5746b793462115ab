package observability

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))

	long := strings.Repeat("x", 20)
	got := truncate(long, 10)
	assert.Equal(t, strings.Repeat("x", 10)+"...", got)
}

func TestTruncate_MultibyteBoundary(t *testing.T) {
	// "é" straddles the cut point; the result must stay valid UTF-8.
	s := strings.Repeat("a", 9) + "é more text"
	got := truncate(s, 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", 9)+"...", got)
}
