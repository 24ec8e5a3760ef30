// Package parser turns the free-form answer of a text-generation backend into
// structured document conflicts and an aggregate risk score.
//
// Parsing is a cascade of strategies tried in a fixed order. The first strategy
// that yields at least one conflict wins; later strategies are fallbacks, never
// merged with earlier results.
package parser

import (
	"log"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"verdicto/internal/domain"
)

// Strategy names reported in Result.Strategy.
const (
	StrategyStructured = "structured"
	StrategySentence   = "sentence"
	StrategyLine       = "line"
	StrategyTerminal   = "terminal"
	StrategyNone       = "none"
)

// DocumentRef identifies one input document, in the order it was listed in the prompt.
type DocumentRef struct {
	ID    uuid.UUID
	Title string
}

// Result is the outcome of parsing one text response.
type Result struct {
	Conflicts []domain.Conflict
	RiskScore int
	Strategy  string
}

// input is the shared, read-only view every strategy receives.
type input struct {
	text   string // trimmed response
	length int    // character count of the raw response
	docs   []DocumentRef
}

// extractFunc returns nil when the strategy does not apply or finds nothing.
type extractFunc func(in input) *Result

type strategy struct {
	name    string
	extract extractFunc
}

// ConflictParser runs the strategy cascade. It holds no mutable state and is
// safe for concurrent use.
type ConflictParser struct {
	strategies []strategy
}

// New creates a ConflictParser with the default cascade:
// structured JSON, sentence patterns, document-referencing lines, terminal fallback.
func New() *ConflictParser {
	return &ConflictParser{
		strategies: []strategy{
			{name: StrategyStructured, extract: extractStructured},
			{name: StrategySentence, extract: extractSentences},
			{name: StrategyLine, extract: extractLines},
			{name: StrategyTerminal, extract: terminalFallback},
		},
	}
}

// Parse converts raw into conflicts. It never fails: inputs no strategy can use
// produce an empty conflict list with a risk score of 0.
func (p *ConflictParser) Parse(raw string, docs []DocumentRef) Result {
	in := input{
		text:   strings.TrimSpace(raw),
		length: utf8.RuneCountInString(raw),
		docs:   append([]DocumentRef(nil), docs...),
	}

	for _, s := range p.strategies {
		res := runStrategy(s, in)
		if res == nil || len(res.Conflicts) == 0 {
			continue
		}
		res.Strategy = s.name
		res.RiskScore = clampScore(res.RiskScore)
		log.Printf("parser.ConflictParser: %s strategy extracted %d conflicts (risk %d)",
			s.name, len(res.Conflicts), res.RiskScore)
		return *res
	}

	return Result{Conflicts: []domain.Conflict{}, RiskScore: 0, Strategy: StrategyNone}
}

// runStrategy isolates a strategy so a bug in one heuristic degrades to the next.
func runStrategy(s strategy, in input) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("parser.ConflictParser: %s strategy panicked: %v", s.name, r)
			res = nil
		}
	}()
	return s.extract(in)
}
