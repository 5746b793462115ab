package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ischemas "github.com/bmartin/banktracker/internal/schemas"
)

func TestRelevanceSchema_ValidJSON(t *testing.T) {
	var v interface{}
	err := json.Unmarshal([]byte(RelevanceAnalysis), &v)
	require.NoError(t, err, "relevance schema should be valid JSON")
}

func TestRelevanceSchema_AcceptsWellFormedAnalysis(t *testing.T) {
	doc := `{"isAIRelated": true, "confidence": 0.92, "reason": "mentions machine learning"}`
	assert.NoError(t, ischemas.ValidateJSONString(RelevanceAnalysis, doc))
}

func TestRelevanceSchema_RejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing reason", `{"isAIRelated": true, "confidence": 0.5}`},
		{"confidence above one", `{"isAIRelated": true, "confidence": 1.2, "reason": "x"}`},
		{"negative confidence", `{"isAIRelated": false, "confidence": -0.1, "reason": "x"}`},
		{"wrong verdict type", `{"isAIRelated": "yes", "confidence": 0.5, "reason": "x"}`},
		{"extra field", `{"isAIRelated": true, "confidence": 0.5, "reason": "x", "extra": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ischemas.ValidateJSONString(RelevanceAnalysis, tt.doc))
		})
	}
}
