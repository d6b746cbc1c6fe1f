package handler

import "getgsa/internal/domain"

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// IngestRequest represents the document ingestion request body.
type IngestRequest struct {
	Documents []domain.Document `json:"documents" binding:"required"`
}

// AnalyzeRequest represents the analyze request body.
type AnalyzeRequest struct {
	RequestID string `json:"request_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// SendEmailRequest represents the send client email request body.
type SendEmailRequest struct {
	ToEmail string `json:"to_email" example:"owner@acmeit.example"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"client email sent"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
