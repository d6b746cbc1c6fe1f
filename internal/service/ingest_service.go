package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"getgsa/internal/config"
	"getgsa/internal/domain"
	"getgsa/internal/pii"
	"getgsa/internal/port"
)

const previewLength = 200

// IngestResult is returned to the caller after a batch is ingested.
type IngestResult struct {
	RequestID      uuid.UUID           `json:"request_id"`
	DocSummaries   []domain.DocSummary `json:"doc_summaries"`
	TotalDocuments int                 `json:"total_documents"`
	TotalWordCount int                 `json:"total_word_count"`
}

// IngestService defines the document ingestion contract.
type IngestService interface {
	Ingest(ctx context.Context, docs []domain.Document) (*IngestResult, error)
}

type ingestService struct {
	reqRepo port.RequestRepository
	docRepo port.DocumentRepository
	storage port.ObjectStorage // nil disables archival
	limits  config.LimitsConfig
	s3cfg   config.S3Config
}

// NewIngestService creates an IngestService. Pass a nil storage to disable
// original-corpus archival.
func NewIngestService(reqRepo port.RequestRepository, docRepo port.DocumentRepository, storage port.ObjectStorage, limits config.LimitsConfig, s3cfg config.S3Config) IngestService {
	return &ingestService{
		reqRepo: reqRepo,
		docRepo: docRepo,
		storage: storage,
		limits:  limits,
		s3cfg:   s3cfg,
	}
}

// Ingest validates the batch, redacts each document and persists the batch
// under a fresh request ID. A document that fails validation degrades to an
// "error" summary entry; only a malformed batch (empty or oversized) rejects
// the whole request.
func (s *ingestService) Ingest(ctx context.Context, docs []domain.Document) (*IngestResult, error) {
	if len(docs) == 0 {
		return nil, domain.ErrNoDocuments
	}
	if len(docs) > s.limits.MaxDocuments {
		return nil, fmt.Errorf("%w: maximum %d allowed", domain.ErrTooManyDocuments, s.limits.MaxDocuments)
	}

	requestID := uuid.New()
	summaries := make([]domain.DocSummary, 0, len(docs))
	var stored []domain.RedactedDocument
	totalWords := 0

	for _, doc := range docs {
		if err := s.validateDocument(doc); err != nil {
			log.Printf("service.IngestService: request %s: document %q rejected: %v", requestID, doc.Name, err)
			summaries = append(summaries, domain.DocSummary{
				Name:     doc.Name,
				Status:   "error",
				Label:    domain.LabelUnknown,
				PIIFound: map[string][]string{},
			})
			continue
		}

		findings := pii.Extract(doc.Text)
		redacted := pii.Redact(doc.Text)
		wordCount := len(strings.Fields(redacted))
		totalWords += wordCount
		label := classifyLabel(doc.Name)

		stored = append(stored, domain.RedactedDocument{
			ID:           uuid.New(),
			RequestID:    requestID,
			Name:         doc.Name,
			Label:        label,
			OriginalText: doc.Text,
			RedactedText: redacted,
			WordCount:    wordCount,
		})
		summaries = append(summaries, domain.DocSummary{
			Name:            doc.Name,
			Status:          "stored",
			Label:           label,
			RedactedPreview: preview(redacted),
			WordCount:       wordCount,
			PIIFound:        findings.Map(),
		})
	}

	if err := s.docRepo.CreateBatch(ctx, stored); err != nil {
		return nil, fmt.Errorf("storing documents: %w", err)
	}

	summariesJSON, err := json.Marshal(summaries)
	if err != nil {
		return nil, fmt.Errorf("marshaling doc summaries: %w", err)
	}
	req := &domain.AnalysisRequest{
		ID:           requestID,
		Status:       domain.RequestStatusPending,
		DocSummaries: summariesJSON,
	}
	if err := s.reqRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("creating analysis request: %w", err)
	}

	s.archiveOriginals(ctx, requestID, docs)

	log.Printf("service.IngestService: request %s: ingested %d documents (%d words)", requestID, len(docs), totalWords)
	return &IngestResult{
		RequestID:      requestID,
		DocSummaries:   summaries,
		TotalDocuments: len(docs),
		TotalWordCount: totalWords,
	}, nil
}

func (s *ingestService) validateDocument(doc domain.Document) error {
	if strings.TrimSpace(doc.Name) == "" || strings.TrimSpace(doc.Text) == "" {
		return domain.ErrDocumentInvalid
	}
	if len(doc.Text) > s.limits.MaxDocumentSizeBytes() {
		return domain.ErrDocumentTooLarge
	}
	return nil
}

// archiveOriginals uploads the submitted corpus to object storage when
// archival is enabled. Best effort: failures are logged, never surfaced.
func (s *ingestService) archiveOriginals(ctx context.Context, requestID uuid.UUID, docs []domain.Document) {
	if s.storage == nil || !s.s3cfg.ArchiveOriginals {
		return
	}
	payload, err := json.Marshal(docs)
	if err != nil {
		log.Printf("service.IngestService: request %s: marshaling archive payload: %v", requestID, err)
		return
	}
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         ArchiveKey(requestID),
		Body:        bytes.NewReader(payload),
		ContentType: "application/json",
	})
	if err != nil {
		log.Printf("service.IngestService: request %s: archiving originals: %v", requestID, err)
	}
}

// ArchiveKey returns the object key under which a request's original corpus
// is archived.
func ArchiveKey(requestID uuid.UUID) string {
	return fmt.Sprintf("corpus/%s.json", requestID)
}

func preview(text string) string {
	if len(text) > previewLength {
		return text[:previewLength] + "..."
	}
	return text
}

// classifyLabel assigns a document label from its declared name.
func classifyLabel(name string) domain.DocumentLabel {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "performance"):
		return domain.LabelPastPerformance
	case strings.Contains(n, "pricing") || strings.Contains(n, "price") || strings.Contains(n, "rate"):
		return domain.LabelPricing
	case strings.Contains(n, "profile") || strings.Contains(n, "company"):
		return domain.LabelProfile
	default:
		return domain.LabelUnknown
	}
}
