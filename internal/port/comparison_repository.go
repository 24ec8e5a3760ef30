package port

import (
	"context"

	"github.com/google/uuid"

	"verdicto/internal/domain"
)

// ComparisonRepository defines the contract for comparison persistence.
// Complete and Fail only succeed on a comparison that is not yet terminal.
type ComparisonRepository interface {
	Create(ctx context.Context, comparison *domain.Comparison) error
	GetByID(ctx context.Context, comparisonID uuid.UUID) (*domain.Comparison, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Comparison, error)
	Complete(ctx context.Context, comparisonID uuid.UUID, conflicts []domain.Conflict, riskScore int) error
	Fail(ctx context.Context, comparisonID uuid.UUID, reason string) error
	Delete(ctx context.Context, ownerID, comparisonID uuid.UUID) error
}
