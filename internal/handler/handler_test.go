package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"getgsa/internal/domain"
	"getgsa/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockIngestService struct {
	mock.Mock
}

func (m *mockIngestService) Ingest(ctx context.Context, docs []domain.Document) (*service.IngestResult, error) {
	args := m.Called(ctx, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IngestResult), args.Error(1)
}

type mockAnalysisService struct {
	mock.Mock
}

func (m *mockAnalysisService) Analyze(ctx context.Context, requestID uuid.UUID) (*service.AnalysisResponse, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalysisResponse), args.Error(1)
}

func (m *mockAnalysisService) GetResults(ctx context.Context, requestID uuid.UUID) (*service.AnalysisResponse, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalysisResponse), args.Error(1)
}

func (m *mockAnalysisService) ChecklistCSV(ctx context.Context, requestID uuid.UUID) (string, []byte, error) {
	args := m.Called(ctx, requestID)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]byte), args.Error(2)
}

func (m *mockAnalysisService) SendClientEmail(ctx context.Context, requestID uuid.UUID, toEmail string) error {
	args := m.Called(ctx, requestID, toEmail)
	return args.Error(0)
}

type mockSINService struct {
	mock.Mock
}

func (m *mockSINService) Lookup(ctx context.Context, naics string) (*domain.SINMapping, error) {
	args := m.Called(ctx, naics)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SINMapping), args.Error(1)
}

func performRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestIngestHandler_Success(t *testing.T) {
	svc := new(mockIngestService)
	requestID := uuid.New()
	svc.On("Ingest", mock.Anything, mock.MatchedBy(func(docs []domain.Document) bool {
		return len(docs) == 1 && docs[0].Name == "profile"
	})).Return(&service.IngestResult{
		RequestID:      requestID,
		DocSummaries:   []domain.DocSummary{{Name: "profile", Status: "stored"}},
		TotalDocuments: 1,
	}, nil)

	r := gin.New()
	r.POST("/ingest", NewIngestHandler(svc).Ingest)

	w := performRequest(r, http.MethodPost, "/ingest", `{"documents":[{"name":"profile","text":"UEI: ABC123DEF456"}]}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)
	assert.Contains(t, w.Body.String(), requestID.String())
	svc.AssertExpectations(t)
}

func TestIngestHandler_MalformedBody(t *testing.T) {
	r := gin.New()
	r.POST("/ingest", NewIngestHandler(new(mockIngestService)).Ingest)

	w := performRequest(r, http.MethodPost, "/ingest", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestIngestHandler_EmptyBatch(t *testing.T) {
	svc := new(mockIngestService)
	svc.On("Ingest", mock.Anything, mock.Anything).Return(nil, domain.ErrNoDocuments)

	r := gin.New()
	r.POST("/ingest", NewIngestHandler(svc).Ingest)

	w := performRequest(r, http.MethodPost, "/ingest", `{"documents":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "NO_DOCUMENTS", decodeEnvelope(t, w).Error.Code)
}

func TestIngestHandler_DocumentTooLarge(t *testing.T) {
	svc := new(mockIngestService)
	svc.On("Ingest", mock.Anything, mock.Anything).Return(nil, domain.ErrDocumentTooLarge)

	r := gin.New()
	r.POST("/ingest", NewIngestHandler(svc).Ingest)

	w := performRequest(r, http.MethodPost, "/ingest", `{"documents":[{"name":"big","text":"x"}]}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestAnalyzeHandler_Success(t *testing.T) {
	svc := new(mockAnalysisService)
	id := uuid.New()
	svc.On("Analyze", mock.Anything, id).Return(&service.AnalysisResponse{
		RequestID:    id.String(),
		Status:       domain.RequestStatusProcessed,
		AnalysisPath: domain.PathDeterministic,
	}, nil)

	r := gin.New()
	r.POST("/analyze", NewAnalyzeHandler(svc).Analyze)

	w := performRequest(r, http.MethodPost, "/analyze", `{"request_id":"`+id.String()+`"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"analysis_path":"deterministic"`)
	svc.AssertExpectations(t)
}

func TestAnalyzeHandler_InvalidUUID(t *testing.T) {
	r := gin.New()
	r.POST("/analyze", NewAnalyzeHandler(new(mockAnalysisService)).Analyze)

	w := performRequest(r, http.MethodPost, "/analyze", `{"request_id":"not-a-uuid"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decodeEnvelope(t, w).Error.Code)
}

func TestAnalyzeHandler_NotFound(t *testing.T) {
	svc := new(mockAnalysisService)
	id := uuid.New()
	svc.On("Analyze", mock.Anything, id).Return(nil, domain.ErrRequestNotFound)

	r := gin.New()
	r.POST("/analyze", NewAnalyzeHandler(svc).Analyze)

	w := performRequest(r, http.MethodPost, "/analyze", `{"request_id":"`+id.String()+`"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "REQUEST_NOT_FOUND", decodeEnvelope(t, w).Error.Code)
}

func TestAnalyzeHandler_GetResultsPending(t *testing.T) {
	svc := new(mockAnalysisService)
	id := uuid.New()
	svc.On("GetResults", mock.Anything, id).Return(&service.AnalysisResponse{
		RequestID: id.String(),
		Status:    domain.RequestStatusPending,
		Message:   "Analysis not yet completed",
	}, nil)

	r := gin.New()
	r.GET("/analyze/:request_id", NewAnalyzeHandler(svc).GetResults)

	w := performRequest(r, http.MethodGet, "/analyze/"+id.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Analysis not yet completed")
}

func TestAnalyzeHandler_DownloadChecklist(t *testing.T) {
	svc := new(mockAnalysisService)
	id := uuid.New()
	svc.On("ChecklistCSV", mock.Anything, id).Return("checklist_test_2026-01-01.csv", []byte("Request ID,Required OK\n"), nil)

	r := gin.New()
	r.GET("/analyze/:request_id/checklist.csv", NewAnalyzeHandler(svc).DownloadChecklist)

	w := performRequest(r, http.MethodGet, "/analyze/"+id.String()+"/checklist.csv", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "checklist_test_2026-01-01.csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "Request ID"))
}

func TestAnalyzeHandler_DownloadChecklistNotReady(t *testing.T) {
	svc := new(mockAnalysisService)
	id := uuid.New()
	svc.On("ChecklistCSV", mock.Anything, id).Return("", nil, domain.ErrAnalysisNotReady)

	r := gin.New()
	r.GET("/analyze/:request_id/checklist.csv", NewAnalyzeHandler(svc).DownloadChecklist)

	w := performRequest(r, http.MethodGet, "/analyze/"+id.String()+"/checklist.csv", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAnalyzeHandler_SendEmail(t *testing.T) {
	svc := new(mockAnalysisService)
	id := uuid.New()
	svc.On("SendClientEmail", mock.Anything, id, "ops@example.com").Return(nil)

	r := gin.New()
	r.POST("/analyze/:request_id/email", NewAnalyzeHandler(svc).SendEmail)

	w := performRequest(r, http.MethodPost, "/analyze/"+id.String()+"/email", `{"to_email":"ops@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "client email sent")
	svc.AssertExpectations(t)
}

func TestAnalyzeHandler_SendEmailNoBody(t *testing.T) {
	svc := new(mockAnalysisService)
	id := uuid.New()
	svc.On("SendClientEmail", mock.Anything, id, "").Return(nil)

	r := gin.New()
	r.POST("/analyze/:request_id/email", NewAnalyzeHandler(svc).SendEmail)

	w := performRequest(r, http.MethodPost, "/analyze/"+id.String()+"/email", "")
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestAnalyzeHandler_SendEmailMissingRecipient(t *testing.T) {
	svc := new(mockAnalysisService)
	id := uuid.New()
	svc.On("SendClientEmail", mock.Anything, id, "").Return(domain.ErrMissingRecipient)

	r := gin.New()
	r.POST("/analyze/:request_id/email", NewAnalyzeHandler(svc).SendEmail)

	w := performRequest(r, http.MethodPost, "/analyze/"+id.String()+"/email", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_RECIPIENT", decodeEnvelope(t, w).Error.Code)
}

func TestSINHandler_Lookup(t *testing.T) {
	svc := new(mockSINService)
	svc.On("Lookup", mock.Anything, "541511").Return(&domain.SINMapping{
		NAICS: "541511", SIN: "54151S", Title: "Custom Computer Programming Services",
	}, nil)

	r := gin.New()
	r.GET("/sins/:naics", NewSINHandler(svc).Lookup)

	w := performRequest(r, http.MethodGet, "/sins/541511", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "54151S")
}

func TestSINHandler_NotFound(t *testing.T) {
	svc := new(mockSINService)
	svc.On("Lookup", mock.Anything, "999999").Return(nil, domain.ErrSINNotFound)

	r := gin.New()
	r.GET("/sins/:naics", NewSINHandler(svc).Lookup)

	w := performRequest(r, http.MethodGet, "/sins/999999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SIN_NOT_FOUND", decodeEnvelope(t, w).Error.Code)
}

func TestHealthHandler_Liveness(t *testing.T) {
	r := gin.New()
	r.GET("/healthz", NewHealthHandler(nil).Liveness)

	w := performRequest(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"service":"getgsa"`)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestMapDomainError_Unknown(t *testing.T) {
	status, code, _ := MapDomainError(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", code)
}
