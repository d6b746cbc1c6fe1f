package domain

import "errors"

var (
	ErrRequestNotFound  = errors.New("request not found")
	ErrNoDocuments      = errors.New("no documents provided")
	ErrTooManyDocuments = errors.New("too many documents in request")
	ErrDocumentTooLarge = errors.New("document exceeds maximum allowed size")
	ErrDocumentInvalid  = errors.New("document is missing required fields")
	ErrIngestHadErrors  = errors.New("previous ingestion had errors")
	ErrAnalysisNotReady = errors.New("analysis not yet completed")
	ErrSINNotFound      = errors.New("no SIN mapping for NAICS code")
	ErrMissingRecipient = errors.New("recipient email address is required")
)
