package parser

import (
	"fmt"
	"regexp"

	"verdicto/internal/domain"
)

const (
	terminalMinResponse = 50
	terminalRiskScore   = 25
)

var legalTermRe = regexp.MustCompile(`(?i)\b(clauses?|provisions?|sections?|articles?|statutes?|agreements?|contracts?)\b`)

const (
	legalTermsDescription = "Legal terminology was found in the analysis, but specific conflicts could not be extracted automatically and need manual review."
	noConflictDescription = "No structural conflicts were detected automatically between the selected documents."
	manualRecommendation  = "Review the documents side by side to confirm whether any conflicts exist."
)

// terminalFallback guarantees one low-confidence record for any non-trivial
// response that no other strategy could interpret.
func terminalFallback(in input) *Result {
	if in.length <= terminalMinResponse {
		return nil
	}

	description := noConflictDescription
	if legalTermRe.MatchString(in.text) {
		description = legalTermsDescription
	}

	affected := make([]domain.AffectedDocument, 0, len(in.docs))
	for _, doc := range in.docs {
		affected = append(affected, domain.AffectedDocument{
			DocumentID: doc.ID,
			Title:      doc.Title,
			Page:       intPtr(1),
			Excerpt:    fmt.Sprintf("Document: %s", doc.Title),
		})
	}

	return &Result{
		Conflicts: []domain.Conflict{{
			Type:              domain.ConflictTypeInconsistency,
			Severity:          domain.SeverityLow,
			Description:       description,
			AffectedDocuments: affected,
			Recommendation:    manualRecommendation,
		}},
		RiskScore: terminalRiskScore,
	}
}
