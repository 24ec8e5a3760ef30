package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"verdicto/internal/domain"
)

// MockComparisonRepo is a mock implementation of port.ComparisonRepository.
type MockComparisonRepo struct {
	mock.Mock
}

func (m *MockComparisonRepo) Create(ctx context.Context, comparison *domain.Comparison) error {
	args := m.Called(ctx, comparison)
	return args.Error(0)
}

func (m *MockComparisonRepo) GetByID(ctx context.Context, comparisonID uuid.UUID) (*domain.Comparison, error) {
	args := m.Called(ctx, comparisonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comparison), args.Error(1)
}

func (m *MockComparisonRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Comparison, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comparison), args.Error(1)
}

func (m *MockComparisonRepo) Complete(ctx context.Context, comparisonID uuid.UUID, conflicts []domain.Conflict, riskScore int) error {
	args := m.Called(ctx, comparisonID, conflicts, riskScore)
	return args.Error(0)
}

func (m *MockComparisonRepo) Fail(ctx context.Context, comparisonID uuid.UUID, reason string) error {
	args := m.Called(ctx, comparisonID, reason)
	return args.Error(0)
}

func (m *MockComparisonRepo) Delete(ctx context.Context, ownerID, comparisonID uuid.UUID) error {
	args := m.Called(ctx, ownerID, comparisonID)
	return args.Error(0)
}
