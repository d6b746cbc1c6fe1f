package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"getgsa/internal/domain"
)

// MockDocumentRepository is a mock implementation of port.DocumentRepository.
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) CreateBatch(ctx context.Context, docs []domain.RedactedDocument) error {
	args := m.Called(ctx, docs)
	return args.Error(0)
}

func (m *MockDocumentRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.RedactedDocument, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RedactedDocument), args.Error(1)
}

func (m *MockDocumentRepository) PurgeOriginalsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
