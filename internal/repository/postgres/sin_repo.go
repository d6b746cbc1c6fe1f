package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"getgsa/internal/domain"
	"getgsa/internal/port"
)

type sinRepo struct {
	db *sqlx.DB
}

// NewSINRepo creates a new PostgreSQL-backed SINMappingRepository.
func NewSINRepo(db *sqlx.DB) port.SINMappingRepository {
	return &sinRepo{db: db}
}

func (r *sinRepo) GetByNAICS(ctx context.Context, naics string) (*domain.SINMapping, error) {
	var m domain.SINMapping
	err := r.db.GetContext(ctx, &m,
		"SELECT naics, sin, title FROM sin_mappings WHERE naics = $1", naics)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSINNotFound
		}
		return nil, fmt.Errorf("sinRepo.GetByNAICS: %w", err)
	}
	return &m, nil
}
