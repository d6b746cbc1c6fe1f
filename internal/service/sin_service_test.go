package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"getgsa/internal/domain"
	"getgsa/mocks"
)

func TestSINLookup_FromRepository(t *testing.T) {
	repo := new(mocks.MockSINMappingRepository)
	repo.On("GetByNAICS", mock.Anything, "541611").Return(&domain.SINMapping{
		NAICS: "541611", SIN: "541611", Title: "Management Consulting",
	}, nil)

	svc := NewSINService(repo)
	mapping, err := svc.Lookup(context.Background(), "541611")
	require.NoError(t, err)
	assert.Equal(t, "541611", mapping.SIN)
	repo.AssertExpectations(t)
}

func TestSINLookup_FallsBackToBuiltin(t *testing.T) {
	repo := new(mocks.MockSINMappingRepository)
	repo.On("GetByNAICS", mock.Anything, "541511").Return(nil, domain.ErrSINNotFound)

	svc := NewSINService(repo)
	mapping, err := svc.Lookup(context.Background(), "541511")
	require.NoError(t, err)
	assert.Equal(t, "54151S", mapping.SIN)
	assert.Equal(t, "Custom Computer Programming Services", mapping.Title)
}

func TestSINLookup_NilRepoUsesBuiltin(t *testing.T) {
	svc := NewSINService(nil)
	mapping, err := svc.Lookup(context.Background(), "541512")
	require.NoError(t, err)
	assert.Equal(t, "54151S", mapping.SIN)
}

func TestSINLookup_NotFound(t *testing.T) {
	repo := new(mocks.MockSINMappingRepository)
	repo.On("GetByNAICS", mock.Anything, "999999").Return(nil, domain.ErrSINNotFound)

	svc := NewSINService(repo)
	_, err := svc.Lookup(context.Background(), "999999")
	assert.ErrorIs(t, err, domain.ErrSINNotFound)
}

func TestSINLookup_InvalidCode(t *testing.T) {
	svc := NewSINService(nil)
	_, err := svc.Lookup(context.Background(), "5415")
	assert.ErrorIs(t, err, domain.ErrSINNotFound)
}
