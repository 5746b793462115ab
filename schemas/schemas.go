// Package schemas holds the JSON Schemas that define the structured output
// contracts between banktracker and external services.
package schemas

import _ "embed"

// RelevanceAnalysis is the JSON Schema the classifier validates LLM
// responses against before accepting them.
//
//go:embed relevance.schema.json
var RelevanceAnalysis string
