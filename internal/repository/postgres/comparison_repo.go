package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"verdicto/internal/domain"
	"verdicto/internal/port"
)

const comparisonColumns = `id, owner_id, document_ids, status, conflicts, risk_score,
	error_message, created_at, updated_at, completed_at`

// comparisonRow mirrors the comparisons table; list columns are stored as JSONB.
type comparisonRow struct {
	ID           uuid.UUID               `db:"id"`
	OwnerID      uuid.UUID               `db:"owner_id"`
	DocumentIDs  json.RawMessage         `db:"document_ids"`
	Status       domain.ComparisonStatus `db:"status"`
	Conflicts    json.RawMessage         `db:"conflicts"`
	RiskScore    int                     `db:"risk_score"`
	ErrorMessage string                  `db:"error_message"`
	CreatedAt    time.Time               `db:"created_at"`
	UpdatedAt    time.Time               `db:"updated_at"`
	CompletedAt  *time.Time              `db:"completed_at"`
}

func (r *comparisonRow) toDomain() (*domain.Comparison, error) {
	c := &domain.Comparison{
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		Status:       r.Status,
		RiskScore:    r.RiskScore,
		ErrorMessage: r.ErrorMessage,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		CompletedAt:  r.CompletedAt,
		DocumentIDs:  []uuid.UUID{},
		Conflicts:    []domain.Conflict{},
	}
	if len(r.DocumentIDs) > 0 {
		if err := json.Unmarshal(r.DocumentIDs, &c.DocumentIDs); err != nil {
			return nil, fmt.Errorf("decoding document_ids of comparison %s: %w", r.ID, err)
		}
	}
	if len(r.Conflicts) > 0 {
		if err := json.Unmarshal(r.Conflicts, &c.Conflicts); err != nil {
			return nil, fmt.Errorf("decoding conflicts of comparison %s: %w", r.ID, err)
		}
	}
	return c, nil
}

type comparisonRepo struct {
	db *sqlx.DB
}

// NewComparisonRepo creates a new PostgreSQL-backed ComparisonRepository.
func NewComparisonRepo(db *sqlx.DB) port.ComparisonRepository {
	return &comparisonRepo{db: db}
}

func (r *comparisonRepo) Create(ctx context.Context, c *domain.Comparison) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Conflicts == nil {
		c.Conflicts = []domain.Conflict{}
	}

	docIDs, err := json.Marshal(c.DocumentIDs)
	if err != nil {
		return fmt.Errorf("comparisonRepo.Create marshal document_ids: %w", err)
	}
	conflicts, err := json.Marshal(c.Conflicts)
	if err != nil {
		return fmt.Errorf("comparisonRepo.Create marshal conflicts: %w", err)
	}

	query := `INSERT INTO comparisons (id, owner_id, document_ids, status, conflicts, risk_score,
		error_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.ExecContext(ctx, query,
		c.ID, c.OwnerID, docIDs, c.Status, conflicts, c.RiskScore,
		c.ErrorMessage, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("comparisonRepo.Create: %w", err)
	}
	return nil
}

func (r *comparisonRepo) GetByID(ctx context.Context, comparisonID uuid.UUID) (*domain.Comparison, error) {
	var row comparisonRow
	err := r.db.GetContext(ctx, &row,
		"SELECT "+comparisonColumns+" FROM comparisons WHERE id = $1", comparisonID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrComparisonNotFound
		}
		return nil, fmt.Errorf("comparisonRepo.GetByID: %w", err)
	}
	c, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("comparisonRepo.GetByID: %w", err)
	}
	return c, nil
}

func (r *comparisonRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Comparison, error) {
	var rows []comparisonRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT "+comparisonColumns+" FROM comparisons WHERE owner_id = $1 ORDER BY created_at DESC, id",
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("comparisonRepo.ListByOwner: %w", err)
	}

	comparisons := make([]domain.Comparison, 0, len(rows))
	for i := range rows {
		c, err := rows[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("comparisonRepo.ListByOwner: %w", err)
		}
		comparisons = append(comparisons, *c)
	}
	return comparisons, nil
}

func (r *comparisonRepo) Complete(ctx context.Context, comparisonID uuid.UUID, conflicts []domain.Conflict, riskScore int) error {
	if conflicts == nil {
		conflicts = []domain.Conflict{}
	}
	data, err := json.Marshal(conflicts)
	if err != nil {
		return fmt.Errorf("comparisonRepo.Complete marshal conflicts: %w", err)
	}
	return r.finalize(ctx, "comparisonRepo.Complete", comparisonID,
		domain.ComparisonStatusCompleted, data, riskScore, "")
}

func (r *comparisonRepo) Fail(ctx context.Context, comparisonID uuid.UUID, reason string) error {
	return r.finalize(ctx, "comparisonRepo.Fail", comparisonID,
		domain.ComparisonStatusFailed, json.RawMessage("[]"), 0, reason)
}

// finalize moves a non-terminal comparison to a terminal status in one statement,
// so a finished comparison can never be overwritten.
func (r *comparisonRepo) finalize(
	ctx context.Context, op string, comparisonID uuid.UUID,
	status domain.ComparisonStatus, conflicts json.RawMessage, riskScore int, reason string,
) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE comparisons
		 SET status = $1, conflicts = $2, risk_score = $3, error_message = $4, updated_at = $5, completed_at = $5
		 WHERE id = $6 AND status IN ('pending', 'processing')`,
		status, conflicts, riskScore, reason, now, comparisonID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rows, _ := result.RowsAffected()
	if rows > 0 {
		return nil
	}

	var current domain.ComparisonStatus
	if err := r.db.GetContext(ctx, &current,
		"SELECT status FROM comparisons WHERE id = $1", comparisonID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrComparisonNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if current.CanTransitionTo(status) {
		return fmt.Errorf("%s: comparison %s changed concurrently", op, comparisonID)
	}
	return domain.ErrComparisonFinalized
}

func (r *comparisonRepo) Delete(ctx context.Context, ownerID, comparisonID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM comparisons WHERE id = $1 AND owner_id = $2",
		comparisonID, ownerID)
	if err != nil {
		return fmt.Errorf("comparisonRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrComparisonNotFound
	}
	return nil
}
