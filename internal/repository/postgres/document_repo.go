package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"verdicto/internal/domain"
	"verdicto/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) GetByID(ctx context.Context, documentID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		`SELECT id, owner_id, title, content_reference, status, created_at
		 FROM documents WHERE id = $1`, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) GetTitles(ctx context.Context, documentIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	titles := make(map[uuid.UUID]string, len(documentIDs))
	if len(documentIDs) == 0 {
		return titles, nil
	}

	query, args, err := sqlx.In("SELECT id, title FROM documents WHERE id IN (?)", documentIDs)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.GetTitles build: %w", err)
	}

	var rows []struct {
		ID    uuid.UUID `db:"id"`
		Title string    `db:"title"`
	}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("documentRepo.GetTitles: %w", err)
	}
	for _, row := range rows {
		titles[row.ID] = row.Title
	}
	return titles, nil
}
