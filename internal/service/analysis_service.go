package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"getgsa/internal/analyzer"
	"getgsa/internal/csvexport"
	"getgsa/internal/domain"
	"getgsa/internal/port"
)

// Analyzer is the slice of the analysis orchestrator the service depends on.
type Analyzer interface {
	Analyze(ctx context.Context, requestID string, docs []domain.Document) (*domain.AnalysisResult, analyzer.Outcome)
}

// AnalysisResponse is the API-facing view of an analysis request. For a
// request that has not been processed yet only RequestID, Status and Message
// are populated.
type AnalysisResponse struct {
	RequestID    string                      `json:"request_id"`
	Status       domain.RequestStatus        `json:"status"`
	Message      string                      `json:"message,omitempty"`
	Parsed       *domain.ParsedFields        `json:"parsed,omitempty"`
	Checklist    *domain.ComplianceChecklist `json:"checklist,omitempty"`
	Brief        string                      `json:"brief,omitempty"`
	ClientEmail  string                      `json:"client_email,omitempty"`
	Citations    []domain.RuleCitation       `json:"citations,omitempty"`
	AnalysisPath domain.AnalysisPath         `json:"analysis_path,omitempty"`
	ModelUsed    string                      `json:"model_used,omitempty"`
}

// AnalysisService defines the analysis workflow contract.
type AnalysisService interface {
	Analyze(ctx context.Context, requestID uuid.UUID) (*AnalysisResponse, error)
	GetResults(ctx context.Context, requestID uuid.UUID) (*AnalysisResponse, error)
	ChecklistCSV(ctx context.Context, requestID uuid.UUID) (filename string, data []byte, err error)
	SendClientEmail(ctx context.Context, requestID uuid.UUID, toEmail string) error
}

type analysisService struct {
	reqRepo  port.RequestRepository
	docRepo  port.DocumentRepository
	analyzer Analyzer
	sender   port.EmailSender
}

// NewAnalysisService creates an AnalysisService.
func NewAnalysisService(reqRepo port.RequestRepository, docRepo port.DocumentRepository, an Analyzer, sender port.EmailSender) AnalysisService {
	return &analysisService{
		reqRepo:  reqRepo,
		docRepo:  docRepo,
		analyzer: an,
		sender:   sender,
	}
}

// Analyze runs the analysis pipeline for a previously ingested request and
// persists the result, replacing any prior result wholesale.
func (s *analysisService) Analyze(ctx context.Context, requestID uuid.UUID) (*AnalysisResponse, error) {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status == domain.RequestStatusError {
		return nil, domain.ErrIngestHadErrors
	}

	stored, err := s.docRepo.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, domain.ErrNoDocuments
	}

	// Analysis reads the original text for extraction fidelity. Once the
	// retention sweeper has purged an original, the redacted text is all
	// that is left.
	docs := make([]domain.Document, 0, len(stored))
	for _, d := range stored {
		text := d.OriginalText
		if text == "" {
			text = d.RedactedText
		}
		docs = append(docs, domain.Document{Name: d.Name, Text: text})
	}

	result, outcome := s.analyzer.Analyze(ctx, requestID.String(), docs)

	if err := applyResult(req, result, outcome); err != nil {
		s.markError(ctx, requestID)
		return nil, err
	}
	if err := s.reqRepo.SaveResult(ctx, req); err != nil {
		s.markError(ctx, requestID)
		return nil, fmt.Errorf("persisting analysis result: %w", err)
	}

	log.Printf("service.AnalysisService: request %s: analyzed via %s path", requestID, outcome.Path)
	return buildResponse(req, result), nil
}

// GetResults returns stored results, or a pending-status payload when the
// request has not been processed.
func (s *analysisService) GetResults(ctx context.Context, requestID uuid.UUID) (*AnalysisResponse, error) {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.RequestStatusProcessed {
		return &AnalysisResponse{
			RequestID: requestID.String(),
			Status:    req.Status,
			Message:   "Analysis not yet completed",
		}, nil
	}

	result, err := decodeStoredResult(req)
	if err != nil {
		return nil, err
	}
	return buildResponse(req, result), nil
}

// ChecklistCSV renders the stored checklist as a CSV download.
func (s *analysisService) ChecklistCSV(ctx context.Context, requestID uuid.UUID) (string, []byte, error) {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return "", nil, err
	}
	if req.Status != domain.RequestStatusProcessed {
		return "", nil, domain.ErrAnalysisNotReady
	}

	var checklist domain.ComplianceChecklist
	if err := json.Unmarshal(req.Checklist, &checklist); err != nil {
		return "", nil, fmt.Errorf("decoding stored checklist: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		return "", nil, fmt.Errorf("writing checklist csv: %w", err)
	}
	if err := w.WriteChecklist(requestID.String(), checklist); err != nil {
		return "", nil, fmt.Errorf("writing checklist csv: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, fmt.Errorf("writing checklist csv: %w", err)
	}

	return csvexport.BuildFilename(requestID.String()), buf.Bytes(), nil
}

// SendClientEmail delivers the stored client email draft. An empty toEmail
// falls back to the extracted point-of-contact address.
func (s *analysisService) SendClientEmail(ctx context.Context, requestID uuid.UUID, toEmail string) error {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status != domain.RequestStatusProcessed {
		return domain.ErrAnalysisNotReady
	}

	if toEmail == "" {
		var fields domain.ParsedFields
		if err := json.Unmarshal(req.ParsedFields, &fields); err == nil && fields.POCEmail != nil {
			toEmail = *fields.POCEmail
		}
	}
	if toEmail == "" {
		return domain.ErrMissingRecipient
	}

	subject := fmt.Sprintf("GSA Onboarding Analysis - Request %s", requestID)
	if err := s.sender.SendClientEmail(ctx, toEmail, subject, req.ClientEmail); err != nil {
		return fmt.Errorf("sending client email: %w", err)
	}
	log.Printf("service.AnalysisService: request %s: client email sent to %s", requestID, toEmail)
	return nil
}

// markError flags the request so later analyze attempts surface the failure
// instead of silently retrying over a half-written row. Best effort: the
// original persistence error is what the caller sees.
func (s *analysisService) markError(ctx context.Context, requestID uuid.UUID) {
	if err := s.reqRepo.UpdateStatus(ctx, requestID, domain.RequestStatusError); err != nil {
		log.Printf("service.AnalysisService: request %s: marking error status: %v", requestID, err)
	}
}

// applyResult writes an analysis result and its outcome metadata onto the
// request row.
func applyResult(req *domain.AnalysisRequest, result *domain.AnalysisResult, outcome analyzer.Outcome) error {
	parsed, err := json.Marshal(result.Parsed)
	if err != nil {
		return fmt.Errorf("marshaling parsed fields: %w", err)
	}
	checklist, err := json.Marshal(result.Checklist)
	if err != nil {
		return fmt.Errorf("marshaling checklist: %w", err)
	}
	citations, err := json.Marshal(result.Citations)
	if err != nil {
		return fmt.Errorf("marshaling citations: %w", err)
	}

	req.ParsedFields = parsed
	req.Checklist = checklist
	req.Citations = citations
	req.Brief = result.Brief
	req.ClientEmail = result.ClientEmail
	req.AnalysisPath = outcome.Path
	req.ModelUsed = outcome.ModelUsed
	req.ProviderError = outcome.ProviderError
	return nil
}

func decodeStoredResult(req *domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	var result domain.AnalysisResult
	if err := json.Unmarshal(req.ParsedFields, &result.Parsed); err != nil {
		return nil, fmt.Errorf("decoding stored parsed fields: %w", err)
	}
	if err := json.Unmarshal(req.Checklist, &result.Checklist); err != nil {
		return nil, fmt.Errorf("decoding stored checklist: %w", err)
	}
	if err := json.Unmarshal(req.Citations, &result.Citations); err != nil {
		return nil, fmt.Errorf("decoding stored citations: %w", err)
	}
	result.Brief = req.Brief
	result.ClientEmail = req.ClientEmail
	return &result, nil
}

func buildResponse(req *domain.AnalysisRequest, result *domain.AnalysisResult) *AnalysisResponse {
	return &AnalysisResponse{
		RequestID:    req.ID.String(),
		Status:       domain.RequestStatusProcessed,
		Parsed:       &result.Parsed,
		Checklist:    &result.Checklist,
		Brief:        result.Brief,
		ClientEmail:  result.ClientEmail,
		Citations:    result.Citations,
		AnalysisPath: req.AnalysisPath,
		ModelUsed:    req.ModelUsed,
	}
}
