package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"verdicto/internal/domain"
)

const (
	sentenceMinResponse = 100
	sentenceMinLength   = 20
	sentenceExcerptLen  = 150
	sentenceMaxResults  = 10
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	pageRe          = regexp.MustCompile(`(?i)\bpage\s+(\d{1,6})\b`)
)

// keywordRule classifies a piece of text when pattern matches it.
type keywordRule struct {
	pattern      *regexp.Regexp
	conflictType domain.ConflictType
	severity     domain.ConflictSeverity
}

// sentenceRules are tested in priority order; keywords must appear as whole words,
// so "no contradictions" does not count as a contradiction.
var sentenceRules = []keywordRule{
	{regexp.MustCompile(`(?i)\b(contradiction|contradicts)\b`), domain.ConflictTypeContradiction, domain.SeverityHigh},
	{regexp.MustCompile(`(?i)\b(missing|absent|lacks)\b`), domain.ConflictTypeMissingClause, domain.SeverityMedium},
	{regexp.MustCompile(`(?i)\b(conflict|conflicting)\b`), domain.ConflictTypeConflictingTerms, domain.SeverityHigh},
	{regexp.MustCompile(`(?i)\b(inconsistency|inconsistent|differs)\b`), domain.ConflictTypeInconsistency, domain.SeverityMedium},
}

// extractSentences scans prose sentence by sentence for conflict keywords.
func extractSentences(in input) *Result {
	if in.length <= sentenceMinResponse {
		return nil
	}

	var conflicts []domain.Conflict
	for _, raw := range sentenceSplitRe.Split(in.text, -1) {
		if len(conflicts) >= sentenceMaxResults {
			break
		}
		sentence := strings.TrimSpace(raw)
		if utf8.RuneCountInString(sentence) < sentenceMinLength {
			continue
		}

		rule, ok := matchRule(sentenceRules, sentence)
		if !ok {
			continue
		}

		page := firstPage(sentence)
		excerpt := truncateRunes(sentence, sentenceExcerptLen)
		affected := []domain.AffectedDocument{}
		for i, doc := range firstDocs(in.docs, 2) {
			affected = append(affected, domain.AffectedDocument{
				DocumentID: doc.ID,
				Title:      doc.Title,
				Page:       intPtr(page + i),
				Excerpt:    excerpt,
			})
		}

		conflicts = append(conflicts, domain.Conflict{
			Type:              rule.conflictType,
			Severity:          rule.severity,
			Description:       sentence,
			AffectedDocuments: affected,
			Recommendation:    recommendationFor(rule.conflictType),
		})
	}

	if len(conflicts) == 0 {
		return nil
	}
	return &Result{Conflicts: conflicts, RiskScore: severityScore(conflicts)}
}

func matchRule(rules []keywordRule, text string) (keywordRule, bool) {
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r, true
		}
	}
	return keywordRule{}, false
}

// firstPage returns the first "page N" reference in text, or 1.
func firstPage(text string) int {
	pages := pageNumbers(text)
	if len(pages) == 0 {
		return 1
	}
	return pages[0]
}

// pageNumbers returns every positive "page N" reference in text, in order.
func pageNumbers(text string) []int {
	var pages []int
	for _, m := range pageRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 {
			pages = append(pages, n)
		}
	}
	return pages
}
