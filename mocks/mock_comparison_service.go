package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"verdicto/internal/domain"
)

// MockComparisonService is a mock implementation of service.ComparisonService.
type MockComparisonService struct {
	mock.Mock
}

func (m *MockComparisonService) CompareDocuments(ctx context.Context, ownerID uuid.UUID, documentIDs []uuid.UUID) (*domain.Comparison, error) {
	args := m.Called(ctx, ownerID, documentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comparison), args.Error(1)
}

func (m *MockComparisonService) Create(ctx context.Context, ownerID uuid.UUID, documentIDs []uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, ownerID, documentIDs)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockComparisonService) Complete(ctx context.Context, comparisonID uuid.UUID, conflicts []domain.Conflict, riskScore int) error {
	args := m.Called(ctx, comparisonID, conflicts, riskScore)
	return args.Error(0)
}

func (m *MockComparisonService) Fail(ctx context.Context, comparisonID uuid.UUID, reason string) error {
	args := m.Called(ctx, comparisonID, reason)
	return args.Error(0)
}

func (m *MockComparisonService) Get(ctx context.Context, comparisonID, callerID uuid.UUID) (*domain.Comparison, error) {
	args := m.Called(ctx, comparisonID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comparison), args.Error(1)
}

func (m *MockComparisonService) List(ctx context.Context, callerID uuid.UUID) ([]domain.Comparison, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comparison), args.Error(1)
}

func (m *MockComparisonService) Delete(ctx context.Context, comparisonID, callerID uuid.UUID) error {
	args := m.Called(ctx, comparisonID, callerID)
	return args.Error(0)
}
