package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document is a user's uploaded legal document as stored by the ingestion pipeline.
type Document struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	OwnerID          uuid.UUID      `db:"owner_id" json:"owner_id"`
	Title            string         `db:"title" json:"title"`
	ContentReference string         `db:"content_reference" json:"content_reference"`
	Status           DocumentStatus `db:"status" json:"status"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
}

// AffectedDocument points a conflict at a location inside one document.
type AffectedDocument struct {
	DocumentID uuid.UUID `json:"document_id"`
	Title      string    `json:"title,omitempty"`
	Page       *int      `json:"page,omitempty"`
	Excerpt    string    `json:"excerpt,omitempty"`
}

// Conflict is one discrepancy detected between the documents of a comparison.
type Conflict struct {
	Type              ConflictType       `json:"type"`
	Severity          ConflictSeverity   `json:"severity"`
	Description       string             `json:"description"`
	AffectedDocuments []AffectedDocument `json:"affected_documents"`
	Recommendation    string             `json:"recommendation"`
}

// Comparison is one conflict-detection run over 2 to 5 documents.
type Comparison struct {
	ID             uuid.UUID        `json:"id"`
	OwnerID        uuid.UUID        `json:"owner_id"`
	DocumentIDs    []uuid.UUID      `json:"document_ids"`
	DocumentTitles []string         `json:"document_titles,omitempty"`
	Status         ComparisonStatus `json:"status"`
	Conflicts      []Conflict       `json:"conflicts"`
	RiskScore      int              `json:"risk_score"`
	ErrorMessage   string           `json:"error_message,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`
}

// IsOwnedBy reports whether userID created the comparison.
func (c *Comparison) IsOwnedBy(userID uuid.UUID) bool {
	return c.OwnerID != uuid.Nil && c.OwnerID == userID
}
