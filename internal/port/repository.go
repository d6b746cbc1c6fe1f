package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"getgsa/internal/domain"
)

// RequestRepository defines the contract for analysis request persistence.
type RequestRepository interface {
	Create(ctx context.Context, req *domain.AnalysisRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisRequest, error)
	// SaveResult replaces the stored analysis columns wholesale and marks the
	// request processed. Re-analysis overwrites the previous result.
	SaveResult(ctx context.Context, req *domain.AnalysisRequest) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) error
	// ListIDsCreatedBefore returns the IDs of requests created before the
	// cutoff. Used by the retention sweeper to purge archived originals.
	ListIDsCreatedBefore(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
}

// DocumentRepository defines the contract for redacted document persistence.
type DocumentRepository interface {
	CreateBatch(ctx context.Context, docs []domain.RedactedDocument) error
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.RedactedDocument, error)
	// PurgeOriginalsBefore blanks the original_text of documents created
	// before the cutoff and returns how many rows were touched.
	PurgeOriginalsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SINMappingRepository resolves NAICS codes to procurement Special Item
// Numbers.
type SINMappingRepository interface {
	GetByNAICS(ctx context.Context, naics string) (*domain.SINMapping, error)
}
