package generator

import (
	"fmt"
	"strings"
)

// BuildComparisonPrompt returns the conflict-detection prompt for the given document
// titles. The output is deterministic for a given ordered list of titles.
func BuildComparisonPrompt(titles []string) string {
	var docs strings.Builder
	for i, title := range titles {
		fmt.Fprintf(&docs, "Document %d: %s\n", i+1, title)
	}

	return `You are a legal document analysis assistant. Compare the following ` + fmt.Sprint(len(titles)) + ` legal documents and identify every conflict between them.

DOCUMENTS:
` + docs.String() + `
Look for:
- Contradictions: provisions in one document that directly oppose provisions in another.
- Inconsistencies: dates, amounts, parties, or definitions that differ between documents.
- Missing clauses: clauses present in one document but absent from another where they are expected.
- Conflicting terms: terms or conditions that cannot both be satisfied.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation, using this structure:
{
  "conflicts": [
    {
      "type": "contradiction | inconsistency | missing_clause | conflicting_terms",
      "severity": "low | medium | high | critical",
      "description": "",
      "affectedDocuments": [
        { "documentIndex": 0, "page": 1, "excerpt": "" }
      ],
      "recommendation": ""
    }
  ],
  "overallRiskScore": 0
}

"documentIndex" is the zero-based position of the document in the list above (Document 1 has index 0).
"overallRiskScore" is an integer from 0 (no risk) to 100 (severe risk).
If no conflicts are found, return an empty "conflicts" array and an "overallRiskScore" of 0.`
}
