// Package classify scores the AI/technology relevance of candidate articles.
// The primary method is a zero-temperature LLM call with a structured output
// contract; a deterministic keyword fallback covers every failure mode so
// classification itself can never fail an aggregation run.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/bmartin/banktracker/internal/llm"
	ischemas "github.com/bmartin/banktracker/internal/schemas"
	"github.com/bmartin/banktracker/schemas"
)

// FallbackConfidence is the fixed confidence assigned to keyword matches.
const FallbackConfidence = 0.8

// ReasonUnavailable is the reason recorded when no classification method
// could run at all; the article is still stored, with zero relevance.
const ReasonUnavailable = "classification unavailable"

// Analysis is the classifier verdict for one article.
type Analysis struct {
	IsAIRelated bool    `json:"isAIRelated"`
	Confidence  float64 `json:"confidence"`
	Reason      string  `json:"reason"`
}

// Score returns the canonical [0,1] relevance score to persist:
// the confidence when relevant, zero otherwise.
func (a Analysis) Score() float64 {
	if a.IsAIRelated {
		return a.Confidence
	}
	return 0
}

// Unavailable is the degenerate verdict used when classification cannot run.
func Unavailable() Analysis {
	return Analysis{IsAIRelated: false, Confidence: 0, Reason: ReasonUnavailable}
}

const systemPrompt = `You are an expert at identifying AI and technology initiatives in banking.
Consider both explicit mentions (AI, ML) and implicit references
(automation, digital transformation). Respond with a JSON object containing:
{
  "isAIRelated": boolean,
  "confidence": number (0-1),
  "reason": string
}
Return ONLY the JSON object, no markdown, no explanation.`

// Classifier scores textual relevance to AI/technology topics. It holds no
// mutable state; a single instance may classify a batch concurrently.
type Classifier struct {
	client  llm.Client
	verbose bool
}

// New creates a classifier backed by the given LLM client. A nil client is
// allowed and degrades every call to the keyword fallback.
func New(client llm.Client) *Classifier {
	return &Classifier{client: client}
}

// WithVerbose enables per-article diagnostic logging.
func (c *Classifier) WithVerbose(verbose bool) *Classifier {
	c.verbose = verbose
	return c
}

// Classify scores the concatenated title and summary. It never returns an
// error: primary-method failures of any kind degrade to the keyword fallback,
// and an article with no text at all gets the unavailable verdict.
func (c *Classifier) Classify(ctx context.Context, title, summary string) Analysis {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(summary) == "" {
		return Unavailable()
	}
	if c.client != nil {
		analysis, err := c.classifyLLM(ctx, title, summary)
		if err == nil {
			return analysis
		}
		if c.verbose {
			log.Printf("classify: LLM classification failed (%v), using keyword fallback for %q", err, title)
		}
	}
	return c.classifyKeywords(title, summary)
}

// classifyLLM submits title+summary to the semantic classifier and validates
// the structured response against the relevance schema before accepting it.
func (c *Classifier) classifyLLM(ctx context.Context, title, summary string) (Analysis, error) {
	content := fmt.Sprintf("Title: %s\nSummary: %s", title, summary)
	prompt := fmt.Sprintf("%s\n\nAnalyze this banking news article for AI/technology relevance:\n\n%s", systemPrompt, content)

	raw, err := c.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return Analysis{}, fmt.Errorf("LLM call failed: %w", err)
	}

	if err := ischemas.ValidateJSONString(schemas.RelevanceAnalysis, raw); err != nil {
		return Analysis{}, fmt.Errorf("LLM response failed schema validation: %w", err)
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return Analysis{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	return analysis, nil
}

// classifyKeywords is the deterministic fallback: any vocabulary hit yields a
// relevant verdict at the fixed fallback confidence. It cannot fail.
func (c *Classifier) classifyKeywords(title, summary string) Analysis {
	text := title + " " + summary
	if kw, ok := matchKeyword(text); ok {
		return Analysis{
			IsAIRelated: true,
			Confidence:  FallbackConfidence,
			Reason:      fmt.Sprintf("matched keyword %q", kw),
		}
	}
	return Analysis{IsAIRelated: false, Confidence: 0, Reason: "no AI/technology indicators found"}
}
