package classify

import "strings"

// Curated vocabulary of AI/technology indicator terms, grouped by the kind of
// signal they carry. Matching is case-insensitive substring over title+summary.
var (
	explicitAITerms = []string{
		"ai", "artificial intelligence", "machine learning", "ml",
		"deep learning", "neural network", "generative ai", "llm",
	}

	namedTechnologies = []string{
		"chatgpt", "cohere", "watson", "copilot",
	}

	applicationTerms = []string{
		"automation", "cognitive", "data science", "analytics",
		"cloud", "api", "autonomous", "robotaxi",
	}

	transformationTerms = []string{
		"innovation", "digital", "technology", "transformation",
		"digital transformation", "tech trends", "disruption",
		"future frontier", "innovation era",
	}

	domainTerms = []string{
		"fintech", "biotech", "life sciences", "digital marketplace",
	}
)

// keywordGroups orders the vocabulary from strongest to weakest signal so the
// matched keyword reported in the reason is the most specific one available.
var keywordGroups = [][]string{
	explicitAITerms,
	namedTechnologies,
	applicationTerms,
	transformationTerms,
	domainTerms,
}

// matchKeyword returns the first vocabulary term contained in text, if any.
// Matching is case-insensitive; short acronyms ("ai", "ml") must appear as
// whole words so that e.g. "email" does not count as a hit.
func matchKeyword(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, group := range keywordGroups {
		for _, kw := range group {
			if len(kw) <= 3 {
				if containsWord(lower, kw) {
					return kw, true
				}
				continue
			}
			if strings.Contains(lower, kw) {
				return kw, true
			}
		}
	}
	return "", false
}

// containsWord reports whether word appears in text delimited by non-letters.
func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isLetter(text[start-1])
		afterOK := end == len(text) || !isLetter(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
