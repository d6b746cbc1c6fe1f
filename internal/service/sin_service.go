package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"getgsa/internal/domain"
	"getgsa/internal/port"
)

// SINService resolves NAICS codes to GSA Special Item Numbers.
type SINService interface {
	Lookup(ctx context.Context, naics string) (*domain.SINMapping, error)
}

type sinService struct {
	repo port.SINMappingRepository // nil falls through to the builtin set
}

// NewSINService creates a SINService backed by the sin_mappings table with
// the builtin IT-services set as fallback.
func NewSINService(repo port.SINMappingRepository) SINService {
	return &sinService{repo: repo}
}

func (s *sinService) Lookup(ctx context.Context, naics string) (*domain.SINMapping, error) {
	if len(naics) != 6 {
		return nil, fmt.Errorf("%w: %q is not a 6-digit NAICS code", domain.ErrSINNotFound, naics)
	}

	if s.repo != nil {
		mapping, err := s.repo.GetByNAICS(ctx, naics)
		if err == nil {
			return mapping, nil
		}
		if !errors.Is(err, domain.ErrSINNotFound) {
			log.Printf("service.SINService: lookup %s: %v, falling back to builtin set", naics, err)
		}
	}

	if m, ok := domain.BuiltinSINMappings[naics]; ok {
		return &m, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrSINNotFound, naics)
}
