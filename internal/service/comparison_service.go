package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"verdicto/internal/domain"
	"verdicto/internal/generator"
	"verdicto/internal/parser"
	"verdicto/internal/port"
)

const (
	unavailableDocumentTitle = "Unavailable document"
	maxFailureReasonLen      = 1000
)

// ComparisonService owns the comparison lifecycle and the conflict-detection pipeline.
// Every read and delete is scoped to the comparison's owner; other callers get
// ErrComparisonNotFound so existence is never revealed.
type ComparisonService interface {
	CompareDocuments(ctx context.Context, ownerID uuid.UUID, documentIDs []uuid.UUID) (*domain.Comparison, error)
	Create(ctx context.Context, ownerID uuid.UUID, documentIDs []uuid.UUID) (uuid.UUID, error)
	Complete(ctx context.Context, comparisonID uuid.UUID, conflicts []domain.Conflict, riskScore int) error
	Fail(ctx context.Context, comparisonID uuid.UUID, reason string) error
	Get(ctx context.Context, comparisonID, callerID uuid.UUID) (*domain.Comparison, error)
	List(ctx context.Context, callerID uuid.UUID) ([]domain.Comparison, error)
	Delete(ctx context.Context, comparisonID, callerID uuid.UUID) error
}

type comparisonService struct {
	compRepo  port.ComparisonRepository
	docRepo   port.DocumentRepository
	generator port.TextGenerator
	parser    *parser.ConflictParser
}

// NewComparisonService creates a new ComparisonService implementation.
func NewComparisonService(
	compRepo port.ComparisonRepository,
	docRepo port.DocumentRepository,
	textGenerator port.TextGenerator,
	conflictParser *parser.ConflictParser,
) ComparisonService {
	return &comparisonService{
		compRepo:  compRepo,
		docRepo:   docRepo,
		generator: textGenerator,
		parser:    conflictParser,
	}
}

// validateDocumentIDs enforces the 2..5 distinct documents rule.
func validateDocumentIDs(documentIDs []uuid.UUID) error {
	if len(documentIDs) < domain.MinComparisonDocuments || len(documentIDs) > domain.MaxComparisonDocuments {
		return domain.ErrInvalidDocumentCount
	}
	seen := make(map[uuid.UUID]bool, len(documentIDs))
	for _, id := range documentIDs {
		if seen[id] {
			return domain.ErrDuplicateDocument
		}
		seen[id] = true
	}
	return nil
}

// resolveDocuments loads the caller's documents in request order. Documents owned by
// someone else are reported as not found.
func (s *comparisonService) resolveDocuments(ctx context.Context, ownerID uuid.UUID, documentIDs []uuid.UUID) ([]parser.DocumentRef, error) {
	refs := make([]parser.DocumentRef, 0, len(documentIDs))
	for _, id := range documentIDs {
		doc, err := s.docRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrDocumentNotFound) {
				return nil, domain.ErrDocumentNotFound
			}
			return nil, fmt.Errorf("loading document %s: %w", id, err)
		}
		if doc.OwnerID != ownerID {
			return nil, domain.ErrDocumentNotFound
		}
		if doc.Status != domain.DocumentStatusProcessed {
			return nil, domain.ErrDocumentNotProcessed
		}
		refs = append(refs, parser.DocumentRef{ID: doc.ID, Title: doc.Title})
	}
	return refs, nil
}

func (s *comparisonService) CompareDocuments(ctx context.Context, ownerID uuid.UUID, documentIDs []uuid.UUID) (*domain.Comparison, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if err := validateDocumentIDs(documentIDs); err != nil {
		return nil, err
	}
	refs, err := s.resolveDocuments(ctx, ownerID, documentIDs)
	if err != nil {
		return nil, err
	}

	// Once the record exists the run always reaches a terminal status, even if
	// the caller disconnects.
	ctx = context.WithoutCancel(ctx)

	comparison, err := s.create(ctx, ownerID, documentIDs)
	if err != nil {
		return nil, err
	}

	titles := make([]string, len(refs))
	for i, ref := range refs {
		titles[i] = ref.Title
	}
	comparison.DocumentTitles = titles

	log.Printf("comparisonService.CompareDocuments: comparison %s querying generator for %d documents",
		comparison.ID, len(refs))

	answer, err := s.generator.Generate(ctx, generator.BuildComparisonPrompt(titles))
	if err != nil {
		log.Printf("comparisonService.CompareDocuments: generator failed for comparison %s: %v", comparison.ID, err)
		if failErr := s.Fail(ctx, comparison.ID, err.Error()); failErr != nil {
			log.Printf("comparisonService.CompareDocuments: failed to mark comparison %s as failed: %v",
				comparison.ID, failErr)
		}
		if !errors.Is(err, domain.ErrUpstreamFailed) {
			err = fmt.Errorf("%w: %v", domain.ErrUpstreamFailed, err)
		}
		return nil, fmt.Errorf("comparison %s: %w", comparison.ID, err)
	}

	result := s.parser.Parse(answer, refs)
	if err := s.Complete(ctx, comparison.ID, result.Conflicts, result.RiskScore); err != nil {
		log.Printf("comparisonService.CompareDocuments: storing result for comparison %s failed: %v", comparison.ID, err)
		if failErr := s.Fail(ctx, comparison.ID, err.Error()); failErr != nil {
			log.Printf("comparisonService.CompareDocuments: failed to mark comparison %s as failed: %v",
				comparison.ID, failErr)
		}
		return nil, err
	}

	now := time.Now().UTC()
	comparison.Status = domain.ComparisonStatusCompleted
	comparison.Conflicts = result.Conflicts
	comparison.RiskScore = result.RiskScore
	comparison.UpdatedAt = now
	comparison.CompletedAt = &now

	log.Printf("comparisonService.CompareDocuments: comparison %s completed via %s strategy (%d conflicts, risk %d)",
		comparison.ID, result.Strategy, len(result.Conflicts), result.RiskScore)
	return comparison, nil
}

func (s *comparisonService) Create(ctx context.Context, ownerID uuid.UUID, documentIDs []uuid.UUID) (uuid.UUID, error) {
	comparison, err := s.create(ctx, ownerID, documentIDs)
	if err != nil {
		return uuid.Nil, err
	}
	return comparison.ID, nil
}

func (s *comparisonService) create(ctx context.Context, ownerID uuid.UUID, documentIDs []uuid.UUID) (*domain.Comparison, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if err := validateDocumentIDs(documentIDs); err != nil {
		return nil, err
	}

	comparison := &domain.Comparison{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		DocumentIDs: append([]uuid.UUID(nil), documentIDs...),
		Status:      domain.ComparisonStatusProcessing,
		Conflicts:   []domain.Conflict{},
	}
	if err := s.compRepo.Create(ctx, comparison); err != nil {
		log.Printf("comparisonService.Create: failed to create comparison for user %s: %v", ownerID, err)
		return nil, fmt.Errorf("creating comparison: %w", err)
	}

	log.Printf("comparisonService.Create: comparison %s created for user %s", comparison.ID, ownerID)
	return comparison, nil
}

func (s *comparisonService) Complete(ctx context.Context, comparisonID uuid.UUID, conflicts []domain.Conflict, riskScore int) error {
	if riskScore < 0 || riskScore > domain.MaxRiskScore {
		return fmt.Errorf("completing comparison %s: risk score %d out of range", comparisonID, riskScore)
	}
	if err := s.compRepo.Complete(ctx, comparisonID, conflicts, riskScore); err != nil {
		if errors.Is(err, domain.ErrComparisonFinalized) {
			log.Printf("comparisonService.Complete: comparison %s is already terminal", comparisonID)
		}
		return fmt.Errorf("completing comparison %s: %w", comparisonID, err)
	}
	return nil
}

func (s *comparisonService) Fail(ctx context.Context, comparisonID uuid.UUID, reason string) error {
	reason = strings.ToValidUTF8(reason, "\uFFFD")
	if r := []rune(reason); len(r) > maxFailureReasonLen {
		reason = string(r[:maxFailureReasonLen])
	}
	if err := s.compRepo.Fail(ctx, comparisonID, reason); err != nil {
		return fmt.Errorf("failing comparison %s: %w", comparisonID, err)
	}
	log.Printf("comparisonService.Fail: comparison %s marked as failed", comparisonID)
	return nil
}

// owned loads a comparison and hides it from anyone but its owner.
func (s *comparisonService) owned(ctx context.Context, comparisonID, callerID uuid.UUID) (*domain.Comparison, error) {
	if callerID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	comparison, err := s.compRepo.GetByID(ctx, comparisonID)
	if err != nil {
		return nil, err
	}
	if !comparison.IsOwnedBy(callerID) {
		return nil, domain.ErrComparisonNotFound
	}
	return comparison, nil
}

func (s *comparisonService) Get(ctx context.Context, comparisonID, callerID uuid.UUID) (*domain.Comparison, error) {
	comparison, err := s.owned(ctx, comparisonID, callerID)
	if err != nil {
		return nil, err
	}

	titles, err := s.docRepo.GetTitles(ctx, comparison.DocumentIDs)
	if err != nil {
		return nil, fmt.Errorf("resolving document titles: %w", err)
	}
	applyTitles(comparison, titles)
	return comparison, nil
}

func (s *comparisonService) List(ctx context.Context, callerID uuid.UUID) ([]domain.Comparison, error) {
	if callerID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	comparisons, err := s.compRepo.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if len(comparisons) == 0 {
		return comparisons, nil
	}

	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for i := range comparisons {
		for _, id := range comparisons[i].DocumentIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	titles, err := s.docRepo.GetTitles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolving document titles: %w", err)
	}
	for i := range comparisons {
		applyTitles(&comparisons[i], titles)
	}
	return comparisons, nil
}

func (s *comparisonService) Delete(ctx context.Context, comparisonID, callerID uuid.UUID) error {
	if _, err := s.owned(ctx, comparisonID, callerID); err != nil {
		return err
	}
	log.Printf("comparisonService.Delete: deleting comparison %s by user %s", comparisonID, callerID)
	return s.compRepo.Delete(ctx, callerID, comparisonID)
}

func applyTitles(c *domain.Comparison, titles map[uuid.UUID]string) {
	c.DocumentTitles = make([]string, len(c.DocumentIDs))
	for i, id := range c.DocumentIDs {
		title, ok := titles[id]
		if !ok {
			title = unavailableDocumentTitle
		}
		c.DocumentTitles[i] = title
	}
}
