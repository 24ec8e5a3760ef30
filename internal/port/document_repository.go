package port

import (
	"context"

	"github.com/google/uuid"

	"verdicto/internal/domain"
)

// DocumentRepository is the read-only view of the document store used by comparisons.
type DocumentRepository interface {
	GetByID(ctx context.Context, documentID uuid.UUID) (*domain.Document, error)
	// GetTitles returns the titles of the given documents keyed by ID.
	// Unknown IDs are absent from the result.
	GetTitles(ctx context.Context, documentIDs []uuid.UUID) (map[uuid.UUID]string, error)
}
