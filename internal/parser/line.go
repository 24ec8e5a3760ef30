package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"verdicto/internal/domain"
)

const (
	lineMinResponse    = 50
	lineMinLength      = 20
	lineDescriptionLen = 300
	lineExcerptLen     = 200
	lineMaxResults     = 15
)

var (
	// Matches "document A", "Doc 1", "[document 2]", "document #3".
	documentRefRe = regexp.MustCompile(`(?i)\b(?:document|doc)\.?\s+#?(?:\d+|[a-z])\b`)
	listMarkerRe  = regexp.MustCompile(`^\s*(?:\d+\s*[.)]|[-*•])\s*`)
	escalationRe  = regexp.MustCompile(`(?i)\b(critical|severe|major)\b`)
	inconsistRe   = regexp.MustCompile(`(?i)\b(differ\w*|varies|inconsistent)\b`)
)

// lineRules use broader stems than sentenceRules; the inconsistency rule is
// handled separately because its severity depends on escalation words.
var lineRules = []keywordRule{
	{regexp.MustCompile(`(?i)\b(contradict\w*|opposite|conflict\w*)\b`), domain.ConflictTypeContradiction, domain.SeverityHigh},
	{regexp.MustCompile(`(?i)\b(missing|absent|lack\w*)\b|\bnot\s+found\b`), domain.ConflictTypeMissingClause, domain.SeverityMedium},
}

var termsRule = keywordRule{
	pattern:      regexp.MustCompile(`(?i)\b(terms?|conditions?|clauses?)\b`),
	conflictType: domain.ConflictTypeConflictingTerms,
	severity:     domain.SeverityMedium,
}

// extractLines picks list-style lines that name a document.
func extractLines(in input) *Result {
	if in.length <= lineMinResponse {
		return nil
	}

	var conflicts []domain.Conflict
	for _, raw := range strings.Split(in.text, "\n") {
		if len(conflicts) >= lineMaxResults {
			break
		}
		line := strings.TrimSpace(raw)
		if utf8.RuneCountInString(line) < lineMinLength || !documentRefRe.MatchString(line) {
			continue
		}

		conflictType, severity := classifyLine(line)

		description := strings.TrimSpace(listMarkerRe.ReplaceAllString(line, ""))
		if description == "" {
			description = line
		}

		pages := pageNumbers(line)
		excerpt := truncateRunes(line, lineExcerptLen)
		affected := []domain.AffectedDocument{}
		for i, doc := range firstDocs(in.docs, 2) {
			affected = append(affected, domain.AffectedDocument{
				DocumentID: doc.ID,
				Title:      doc.Title,
				Page:       intPtr(pageAt(pages, i)),
				Excerpt:    excerpt,
			})
		}

		conflicts = append(conflicts, domain.Conflict{
			Type:              conflictType,
			Severity:          severity,
			Description:       truncateRunes(description, lineDescriptionLen),
			AffectedDocuments: affected,
			Recommendation:    recommendationFor(conflictType),
		})
	}

	if len(conflicts) == 0 {
		return nil
	}
	return &Result{Conflicts: conflicts, RiskScore: severityScore(conflicts)}
}

func classifyLine(line string) (domain.ConflictType, domain.ConflictSeverity) {
	if rule, ok := matchRule(lineRules, line); ok {
		return rule.conflictType, rule.severity
	}
	if inconsistRe.MatchString(line) {
		if escalationRe.MatchString(line) {
			return domain.ConflictTypeInconsistency, domain.SeverityHigh
		}
		return domain.ConflictTypeInconsistency, domain.SeverityMedium
	}
	if termsRule.pattern.MatchString(line) {
		return termsRule.conflictType, termsRule.severity
	}
	return defaultConflictType, defaultSeverity
}

// pageAt gives the i-th referenced page, reusing the first one when the line
// names fewer pages than documents.
func pageAt(pages []int, i int) int {
	switch {
	case i < len(pages):
		return pages[i]
	case len(pages) > 0:
		return pages[0]
	default:
		return 1
	}
}
