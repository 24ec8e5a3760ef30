package parser

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"verdicto/internal/domain"
)

const (
	defaultStructuredScore = 50
	missingDescription     = "The analysis reported a conflict without describing it."
	maxPage                = 100000
)

// extractStructured decodes the first balanced JSON object in the response and
// maps its "conflicts" array. Malformed JSON is not an error: it yields nil so the
// next strategy runs.
func extractStructured(in input) *Result {
	candidate, ok := firstJSONObject(in.text)
	if !ok {
		return nil
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil
	}

	items, ok := lookup(payload, "conflicts").([]interface{})
	if !ok || len(items) == 0 {
		return nil
	}

	conflicts := make([]domain.Conflict, 0, len(items))
	for _, item := range items {
		obj, _ := item.(map[string]interface{})
		conflicts = append(conflicts, structuredConflict(obj, in.docs))
	}

	score := defaultStructuredScore
	if v, ok := numberField(payload, "overallRiskScore", "overall_risk_score", "riskScore", "risk_score"); ok {
		score = int(math.Round(math.Max(0, math.Min(float64(domain.MaxRiskScore), v))))
	}

	return &Result{Conflicts: conflicts, RiskScore: clampScore(score)}
}

func structuredConflict(obj map[string]interface{}, docs []DocumentRef) domain.Conflict {
	conflictType := normalizeType(stringField(obj, "type"))

	description := strings.TrimSpace(stringField(obj, "description"))
	if description == "" {
		description = missingDescription
	}
	recommendation := strings.TrimSpace(stringField(obj, "recommendation"))
	if recommendation == "" {
		recommendation = recommendationFor(conflictType)
	}

	affected := []domain.AffectedDocument{}
	if len(docs) > 0 {
		refs, _ := lookup(obj, "affectedDocuments", "affected_documents").([]interface{})
		for _, ref := range refs {
			m, _ := ref.(map[string]interface{})
			idx, ok := numberField(m, "documentIndex", "document_index")
			doc := resolveDocument(docs, idx, ok)

			ad := domain.AffectedDocument{
				DocumentID: doc.ID,
				Title:      doc.Title,
				Excerpt:    strings.TrimSpace(stringField(m, "excerpt")),
			}
			if page, ok := numberField(m, "page"); ok && page >= 1 && page <= maxPage {
				ad.Page = intPtr(int(page))
			}
			affected = append(affected, ad)
		}
	}

	return domain.Conflict{
		Type:              conflictType,
		Severity:          normalizeSeverity(stringField(obj, "severity")),
		Description:       description,
		AffectedDocuments: affected,
		Recommendation:    recommendation,
	}
}

// resolveDocument maps a zero-based documentIndex onto the input documents,
// using the first document when the index is absent or out of range.
func resolveDocument(docs []DocumentRef, idx float64, present bool) DocumentRef {
	if !present || idx < 0 || idx >= float64(len(docs)) {
		return docs[0]
	}
	return docs[int(idx)]
}

// firstJSONObject returns the first balanced {...} substring of s. Braces inside
// JSON string literals are ignored.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// lookup returns the value of the first present key.
func lookup(m map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func stringField(m map[string]interface{}, keys ...string) string {
	switch v := lookup(m, keys...).(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// numberField accepts JSON numbers and numeric strings such as "2".
func numberField(m map[string]interface{}, keys ...string) (float64, bool) {
	switch v := lookup(m, keys...).(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
