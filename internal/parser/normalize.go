package parser

import (
	"strings"
	"unicode/utf8"

	"verdicto/internal/domain"
)

const (
	defaultConflictType = domain.ConflictTypeInconsistency
	defaultSeverity     = domain.SeverityMedium
)

// normalizeType maps untrusted text onto a known conflict type, falling back to
// inconsistency. "Missing Clause", "missing-clause" and "missing_clause" are equivalent.
func normalizeType(raw string) domain.ConflictType {
	t := domain.ConflictType(canonicalEnum(raw))
	if domain.ValidConflictTypes[t] {
		return t
	}
	return defaultConflictType
}

// normalizeSeverity maps untrusted text onto a known severity, falling back to medium.
func normalizeSeverity(raw string) domain.ConflictSeverity {
	s := domain.ConflictSeverity(canonicalEnum(raw))
	if _, ok := domain.SeverityPoints[s]; ok {
		return s
	}
	return defaultSeverity
}

func canonicalEnum(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}

// recommendationFor returns the stock recommendation used when none was supplied.
func recommendationFor(t domain.ConflictType) string {
	switch t {
	case domain.ConflictTypeContradiction:
		return "Reconcile the contradictory provisions so both documents state the same obligation."
	case domain.ConflictTypeMissingClause:
		return "Add the missing clause or confirm its omission is intentional."
	case domain.ConflictTypeConflictingTerms:
		return "Align the conflicting terms and state which document prevails."
	default:
		return "Review the differing passages and harmonize the wording across documents."
	}
}

// severityScore sums the points of every conflict, capped at the maximum risk score.
func severityScore(conflicts []domain.Conflict) int {
	total := 0
	for i := range conflicts {
		total += domain.SeverityPoints[conflicts[i].Severity]
	}
	return clampScore(total)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > domain.MaxRiskScore {
		return domain.MaxRiskScore
	}
	return score
}

// truncateRunes cuts s to at most n characters without splitting a UTF-8 sequence.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func intPtr(v int) *int {
	return &v
}

// firstDocs returns at most n input documents.
func firstDocs(docs []DocumentRef, n int) []DocumentRef {
	if len(docs) < n {
		return docs
	}
	return docs[:n]
}
