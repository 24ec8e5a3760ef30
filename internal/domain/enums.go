package domain

// DocumentStatus represents the ingestion lifecycle of a legal document.
type DocumentStatus string

const (
	DocumentStatusPending    DocumentStatus = "pending"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusProcessed  DocumentStatus = "processed"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// ComparisonStatus represents the lifecycle of a conflict-detection run.
type ComparisonStatus string

const (
	ComparisonStatusPending    ComparisonStatus = "pending"
	ComparisonStatusProcessing ComparisonStatus = "processing"
	ComparisonStatusCompleted  ComparisonStatus = "completed"
	ComparisonStatusFailed     ComparisonStatus = "failed"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s ComparisonStatus) IsTerminal() bool {
	return s == ComparisonStatusCompleted || s == ComparisonStatusFailed
}

// CanTransitionTo reports whether moving from s to next is a forward transition.
// Allowed: pending->processing, pending|processing->completed|failed.
func (s ComparisonStatus) CanTransitionTo(next ComparisonStatus) bool {
	switch s {
	case ComparisonStatusPending:
		return next == ComparisonStatusProcessing || next.IsTerminal()
	case ComparisonStatusProcessing:
		return next.IsTerminal()
	default:
		return false
	}
}

// ConflictType classifies a detected discrepancy between documents.
type ConflictType string

const (
	ConflictTypeContradiction    ConflictType = "contradiction"
	ConflictTypeInconsistency    ConflictType = "inconsistency"
	ConflictTypeMissingClause    ConflictType = "missing_clause"
	ConflictTypeConflictingTerms ConflictType = "conflicting_terms"
)

// ValidConflictTypes is the set of accepted conflict types.
var ValidConflictTypes = map[ConflictType]bool{
	ConflictTypeContradiction:    true,
	ConflictTypeInconsistency:    true,
	ConflictTypeMissingClause:    true,
	ConflictTypeConflictingTerms: true,
}

// ConflictSeverity ranks how serious a conflict is.
type ConflictSeverity string

const (
	SeverityLow      ConflictSeverity = "low"
	SeverityMedium   ConflictSeverity = "medium"
	SeverityHigh     ConflictSeverity = "high"
	SeverityCritical ConflictSeverity = "critical"
)

// SeverityPoints maps each severity to its contribution to a heuristic risk score.
var SeverityPoints = map[ConflictSeverity]int{
	SeverityLow:      10,
	SeverityMedium:   25,
	SeverityHigh:     40,
	SeverityCritical: 60,
}

// Comparison size bounds.
const (
	MinComparisonDocuments = 2
	MaxComparisonDocuments = 5
)

// MaxRiskScore is the upper bound of a comparison risk score.
const MaxRiskScore = 100
