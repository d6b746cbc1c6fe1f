package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"getgsa/internal/domain"
	"getgsa/internal/port"
)

type requestRepo struct {
	db *sqlx.DB
}

// NewRequestRepo creates a new PostgreSQL-backed RequestRepository.
func NewRequestRepo(db *sqlx.DB) port.RequestRepository {
	return &requestRepo{db: db}
}

func (r *requestRepo) Create(ctx context.Context, req *domain.AnalysisRequest) error {
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now

	query := `INSERT INTO analysis_requests (
		id, status, doc_summaries, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.Status, req.DocSummaries, req.CreatedAt, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("requestRepo.Create: %w", err)
	}
	return nil
}

func (r *requestRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisRequest, error) {
	var req domain.AnalysisRequest
	err := r.db.GetContext(ctx, &req,
		"SELECT * FROM analysis_requests WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("requestRepo.GetByID: %w", err)
	}
	return &req, nil
}

func (r *requestRepo) SaveResult(ctx context.Context, req *domain.AnalysisRequest) error {
	now := time.Now().UTC()
	req.UpdatedAt = now
	req.AnalyzedAt = &now
	req.Status = domain.RequestStatusProcessed

	query := `UPDATE analysis_requests SET
		status = $2,
		parsed_fields = $3,
		checklist = $4,
		brief = $5,
		client_email = $6,
		citations = $7,
		analysis_path = $8,
		model_used = $9,
		provider_error = $10,
		analyzed_at = $11,
		updated_at = $12
	WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		req.ID, req.Status, req.ParsedFields, req.Checklist, req.Brief,
		req.ClientEmail, req.Citations, req.AnalysisPath, req.ModelUsed,
		req.ProviderError, req.AnalyzedAt, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("requestRepo.SaveResult: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("requestRepo.SaveResult: rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func (r *requestRepo) ListIDsCreatedBefore(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids,
		"SELECT id FROM analysis_requests WHERE created_at < $1", cutoff)
	if err != nil {
		return nil, fmt.Errorf("requestRepo.ListIDsCreatedBefore: %w", err)
	}
	return ids, nil
}

func (r *requestRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE analysis_requests SET status = $2, updated_at = $3 WHERE id = $1",
		id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("requestRepo.UpdateStatus: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("requestRepo.UpdateStatus: rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}
