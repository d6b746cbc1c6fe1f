package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"getgsa/internal/domain"
)

// MockSINMappingRepository is a mock implementation of port.SINMappingRepository.
type MockSINMappingRepository struct {
	mock.Mock
}

func (m *MockSINMappingRepository) GetByNAICS(ctx context.Context, naics string) (*domain.SINMapping, error) {
	args := m.Called(ctx, naics)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SINMapping), args.Error(1)
}
