package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"getgsa/internal/domain"
	"getgsa/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) CreateBatch(ctx context.Context, docs []domain.RedactedDocument) error {
	if len(docs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range docs {
		docs[i].CreatedAt = now
	}

	query := `INSERT INTO redacted_documents (
		id, request_id, name, label, original_text, redacted_text, word_count, created_at
	) VALUES (
		:id, :request_id, :name, :label, :original_text, :redacted_text, :word_count, :created_at
	)`

	_, err := r.db.NamedExecContext(ctx, query, docs)
	if err != nil {
		return fmt.Errorf("documentRepo.CreateBatch: %w", err)
	}
	return nil
}

func (r *documentRepo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.RedactedDocument, error) {
	var docs []domain.RedactedDocument
	err := r.db.SelectContext(ctx, &docs,
		"SELECT * FROM redacted_documents WHERE request_id = $1 ORDER BY created_at, name",
		requestID)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListByRequest: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) PurgeOriginalsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE redacted_documents SET original_text = '' WHERE created_at < $1 AND original_text <> ''",
		cutoff)
	if err != nil {
		return 0, fmt.Errorf("documentRepo.PurgeOriginalsBefore: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("documentRepo.PurgeOriginalsBefore: rows affected: %w", err)
	}
	return rows, nil
}
