package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAnalysisProvider is a mock implementation of port.AnalysisProvider.
type MockAnalysisProvider struct {
	mock.Mock
}

func (m *MockAnalysisProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAnalysisProvider) Model() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAnalysisProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}
