package parser_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"verdicto/internal/domain"
	"verdicto/internal/parser"
)

// TestParseScoreAlwaysInRange verifies the risk score bound for arbitrary input.
// Property: 0 <= Parse(s).RiskScore <= 100
func TestParseScoreAlwaysInRange(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	p := parser.New()
	docs := twoDocs()

	properties.Property("risk score stays within 0..100", prop.ForAll(
		func(s string) bool {
			res := p.Parse(s, docs)
			return res.RiskScore >= 0 && res.RiskScore <= domain.MaxRiskScore && res.Conflicts != nil
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// TestParseLongResponsesNeverEmpty verifies the terminal fallback guarantee.
// Property: len(s) > 50 => len(Parse(s).Conflicts) >= 1
func TestParseLongResponsesNeverEmpty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	p := parser.New()
	docs := twoDocs()
	prefix := strings.Repeat("review ", 8)

	properties.Property("non-trivial responses yield at least one conflict", prop.ForAll(
		func(s string) bool {
			res := p.Parse(prefix+s, docs)
			return len(res.Conflicts) >= 1 && res.Strategy != parser.StrategyNone
		},
		gen.AnyString(),
	))

	properties.Property("whitespace padding counts toward the length", prop.ForAll(
		func(pad int, s string) bool {
			raw := strings.Repeat("\n", pad) + s + strings.Repeat(" ", pad)
			res := p.Parse(raw, docs)
			return len(res.Conflicts) >= 1 && res.Strategy != parser.StrategyNone
		},
		gen.IntRange(26, 80),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// TestParseStructuredPreservesCount verifies structured output mirrors the input array.
// Property: Parse({"conflicts":[n items],"overallRiskScore":r}) has n conflicts and score clamp(r)
func TestParseStructuredPreservesCount(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	p := parser.New()
	docs := []parser.DocumentRef{{ID: uuid.New(), Title: "A"}, {ID: uuid.New(), Title: "B"}, {ID: uuid.New(), Title: "C"}}

	properties.Property("conflict count and risk score survive parsing", prop.ForAll(
		func(severities []string, types []string, score int, index int) bool {
			if len(severities) == 0 {
				return true
			}
			items := make([]map[string]interface{}, len(severities))
			for i, sev := range severities {
				item := map[string]interface{}{
					"severity":          sev,
					"description":       "generated",
					"affectedDocuments": []map[string]interface{}{{"documentIndex": index}},
				}
				if i < len(types) {
					item["type"] = types[i]
				}
				items[i] = item
			}
			payload, err := json.Marshal(map[string]interface{}{"conflicts": items, "overallRiskScore": score})
			if err != nil {
				return false
			}

			res := p.Parse(string(payload), docs)
			if res.Strategy != parser.StrategyStructured || len(res.Conflicts) != len(severities) {
				return false
			}

			want := score
			if want < 0 {
				want = 0
			}
			if want > domain.MaxRiskScore {
				want = domain.MaxRiskScore
			}
			if res.RiskScore != want {
				return false
			}

			for _, c := range res.Conflicts {
				if !domain.ValidConflictTypes[c.Type] {
					return false
				}
				if _, ok := domain.SeverityPoints[c.Severity]; !ok {
					return false
				}
				if len(c.AffectedDocuments) != 1 {
					return false
				}
				if index < 0 || index >= len(docs) {
					if c.AffectedDocuments[0].DocumentID != docs[0].ID {
						return false
					}
				} else if c.AffectedDocuments[0].DocumentID != docs[index].ID {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.OneConstOf("low", "Medium", "HIGH", "critical", "extreme", "")),
		gen.SliceOf(gen.OneConstOf("contradiction", "Missing Clause", "conflicting-terms", "inconsistency", "typo")),
		gen.IntRange(-50, 250),
		gen.IntRange(-2, 5),
	))

	properties.TestingRun(t)
}
