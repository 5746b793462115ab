package classify

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmartin/banktracker/internal/llm"
)

// stubClient returns a canned response or error for every call.
type stubClient struct {
	response string
	err      error
}

func (s *stubClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return s.response, s.err
}

func (s *stubClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return s.response, s.err
}

func (s *stubClient) GetModel(_ llm.ModelTier) string { return "stub" }
func (s *stubClient) Close() error                    { return nil }

func TestClassify_PrimarySuccess(t *testing.T) {
	c := New(&stubClient{response: `{"isAIRelated": true, "confidence": 0.92, "reason": "announces a machine learning platform"}`})

	analysis := c.Classify(context.Background(), "Bank announces ML platform", "A new machine learning platform.")
	assert.True(t, analysis.IsAIRelated)
	assert.Equal(t, 0.92, analysis.Confidence)
	assert.Equal(t, 0.92, analysis.Score())
}

func TestClassify_PrimaryNotRelevant(t *testing.T) {
	c := New(&stubClient{response: `{"isAIRelated": false, "confidence": 0.1, "reason": "routine dividend announcement"}`})

	analysis := c.Classify(context.Background(), "Quarterly dividend declared", "")
	assert.False(t, analysis.IsAIRelated)
	// Stored score is zero when not relevant, regardless of confidence.
	assert.Equal(t, 0.0, analysis.Score())
}

func TestClassify_FallbackOnLLMError(t *testing.T) {
	c := New(&stubClient{err: fmt.Errorf("service unavailable")})

	analysis := c.Classify(context.Background(), "Bank launches automation initiative", "")
	assert.True(t, analysis.IsAIRelated)
	assert.Equal(t, FallbackConfidence, analysis.Confidence)
	assert.Contains(t, analysis.Reason, "automation")
}

func TestClassify_FallbackOnMalformedResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "the article is about AI"},
		{"missing fields", `{"isAIRelated": true}`},
		{"confidence out of range", `{"isAIRelated": true, "confidence": 3.5, "reason": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(&stubClient{response: tt.response})
			analysis := c.Classify(context.Background(), "Digital transformation program update", "")
			// Keyword fallback takes over and still finds relevance.
			assert.True(t, analysis.IsAIRelated)
			assert.Equal(t, FallbackConfidence, analysis.Confidence)
		})
	}
}

func TestClassify_NilClientUsesFallback(t *testing.T) {
	c := New(nil)

	analysis := c.Classify(context.Background(), "Branch opening hours extended", "New Saturday hours at select branches.")
	assert.False(t, analysis.IsAIRelated)
	assert.Equal(t, 0.0, analysis.Confidence)
	assert.Equal(t, 0.0, analysis.Score())
}

func TestMatchKeyword_WholeWordAcronyms(t *testing.T) {
	// "ai" must not match inside unrelated words.
	_, ok := matchKeyword("chairman hails maintained momentum")
	assert.False(t, ok)

	kw, ok := matchKeyword("the AI strategy")
	require.True(t, ok)
	assert.Equal(t, "ai", kw)
}

func TestMatchKeyword_PrefersStrongerSignal(t *testing.T) {
	kw, ok := matchKeyword("machine learning drives digital transformation")
	require.True(t, ok)
	assert.Equal(t, "machine learning", kw)
}

func TestUnavailable(t *testing.T) {
	a := Unavailable()
	assert.False(t, a.IsAIRelated)
	assert.Equal(t, 0.0, a.Score())
	assert.Equal(t, ReasonUnavailable, a.Reason)
}

func TestClassify_EmptyInputIsUnavailable(t *testing.T) {
	// With nothing to analyze, neither the LLM nor the keyword fallback can
	// produce a meaningful verdict; the LLM must not even be called.
	c := New(&stubClient{err: fmt.Errorf("should not be called")})

	for _, inputs := range [][2]string{{"", ""}, {"   ", ""}, {"", "\n\t"}} {
		a := c.Classify(context.Background(), inputs[0], inputs[1])
		assert.Equal(t, Unavailable(), a)
	}
}
