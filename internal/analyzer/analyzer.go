// Package analyzer orchestrates the dual-path document analysis: one attempt
// against a generative provider, with a guaranteed deterministic fallback
// (extract, rules, report). Analyze always terminates in a valid result.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"getgsa/internal/domain"
	"getgsa/internal/extract"
	"getgsa/internal/port"
	"getgsa/internal/report"
	"getgsa/internal/rules"
)

// Outcome records which path produced a result and why, for the audit
// columns. Callers never branch on it to interpret the result itself.
type Outcome struct {
	Path          domain.AnalysisPath
	ModelUsed     string
	ProviderError string
}

// Analyzer runs analyses. A nil provider means every request takes the
// deterministic path.
type Analyzer struct {
	provider port.AnalysisProvider
}

// New creates an Analyzer. Pass a nil provider to disable the generative
// path entirely.
func New(provider port.AnalysisProvider) *Analyzer {
	return &Analyzer{provider: provider}
}

// Analyze produces the analysis result for one request. It never returns an
// error: any generative failure (transport, rate limit, non-JSON body,
// schema mismatch) falls through to the deterministic pipeline, which is
// total. A single generative attempt is made, with no retry.
func (a *Analyzer) Analyze(ctx context.Context, requestID string, docs []domain.Document) (*domain.AnalysisResult, Outcome) {
	if a.provider == nil {
		log.Printf("analyzer.Analyzer: request %s: no provider configured, using deterministic path", requestID)
		return a.deterministic(requestID, docs), Outcome{Path: domain.PathDeterministic}
	}

	raw, err := a.provider.Complete(ctx, SystemPrompt, BuildAnalysisPrompt(docs))
	if err == nil {
		var result *domain.AnalysisResult
		result, err = decodeResult(raw)
		if err == nil {
			log.Printf("analyzer.Analyzer: request %s: generative analysis complete (%s)", requestID, a.provider.Model())
			return result, Outcome{Path: domain.PathGenerative, ModelUsed: a.provider.Model()}
		}
	}

	log.Printf("analyzer.Analyzer: request %s: %s failed, falling back to deterministic path: %v", requestID, a.provider.Name(), err)
	return a.deterministic(requestID, docs), Outcome{
		Path:          domain.PathDeterministic,
		ProviderError: err.Error(),
	}
}

func (a *Analyzer) deterministic(requestID string, docs []domain.Document) *domain.AnalysisResult {
	fields := extract.Extract(docs)
	checklist := rules.Evaluate(fields)
	brief, email, citations := report.Generate(fields, checklist, requestID)
	return &domain.AnalysisResult{
		Parsed:      fields,
		Checklist:   checklist,
		Brief:       brief,
		ClientEmail: email,
		Citations:   citations,
	}
}

// decodeResult strictly decodes a provider response into the canonical
// result shape. Missing top-level keys, wrong types and non-JSON bodies are
// all failures.
func decodeResult(raw string) (*domain.AnalysisResult, error) {
	var wire struct {
		Parsed      *domain.ParsedFields        `json:"parsed"`
		Checklist   *domain.ComplianceChecklist `json:"checklist"`
		Brief       *string                     `json:"brief"`
		ClientEmail *string                     `json:"client_email"`
		Citations   []domain.RuleCitation       `json:"citations"`
	}
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, fmt.Errorf("decoding provider response: %w", err)
	}
	switch {
	case wire.Parsed == nil:
		return nil, fmt.Errorf("provider response missing key: parsed")
	case wire.Checklist == nil:
		return nil, fmt.Errorf("provider response missing key: checklist")
	case wire.Brief == nil:
		return nil, fmt.Errorf("provider response missing key: brief")
	case wire.ClientEmail == nil:
		return nil, fmt.Errorf("provider response missing key: client_email")
	}

	result := &domain.AnalysisResult{
		Parsed:      *wire.Parsed,
		Checklist:   *wire.Checklist,
		Brief:       *wire.Brief,
		ClientEmail: *wire.ClientEmail,
		Citations:   wire.Citations,
	}
	if result.Checklist.Problems == nil {
		result.Checklist.Problems = []domain.ComplianceProblem{}
	}
	if result.Citations == nil {
		result.Citations = []domain.RuleCitation{}
	}
	return result, nil
}
