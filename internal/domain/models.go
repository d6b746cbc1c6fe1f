package domain

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Document is a single submitted business document: a caller-supplied name
// and free text. Immutable after ingestion.
type Document struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// RedactedDocument is the persisted form of a submitted document. The
// original (unredacted) text is retained alongside the redacted text so the
// analysis pipeline can extract fields at full fidelity; the retention
// sweeper purges originals past the configured window.
type RedactedDocument struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	RequestID    uuid.UUID     `db:"request_id" json:"request_id"`
	Name         string        `db:"name" json:"name"`
	Label        DocumentLabel `db:"label" json:"label"`
	OriginalText string        `db:"original_text" json:"-"`
	RedactedText string        `db:"redacted_text" json:"redacted_text"`
	WordCount    int           `db:"word_count" json:"word_count"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}

// DocSummary is the per-document ingestion summary returned to the caller and
// stored on the request row.
type DocSummary struct {
	Name            string              `json:"name"`
	Status          string              `json:"status"`
	Label           DocumentLabel       `json:"label"`
	RedactedPreview string              `json:"redacted_preview"`
	WordCount       int                 `json:"word_count"`
	PIIFound        map[string][]string `json:"pii_found"`
}

// AnalysisRequest tracks one ingestion batch and, once analyzed, its results.
// A re-analysis replaces the stored results wholesale.
type AnalysisRequest struct {
	ID            uuid.UUID       `db:"id" json:"request_id"`
	Status        RequestStatus   `db:"status" json:"status"`
	DocSummaries  json.RawMessage `db:"doc_summaries" json:"doc_summaries"`
	ParsedFields  json.RawMessage `db:"parsed_fields" json:"parsed_fields,omitempty"`
	Checklist     json.RawMessage `db:"checklist" json:"checklist,omitempty"`
	Brief         string          `db:"brief" json:"brief,omitempty"`
	ClientEmail   string          `db:"client_email" json:"client_email,omitempty"`
	Citations     json.RawMessage `db:"citations" json:"citations,omitempty"`
	AnalysisPath  AnalysisPath    `db:"analysis_path" json:"analysis_path,omitempty"`
	ModelUsed     string          `db:"model_used" json:"model_used,omitempty"`
	ProviderError string          `db:"provider_error" json:"provider_error,omitempty"`
	AnalyzedAt    *time.Time      `db:"analyzed_at" json:"analyzed_at,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// ParsedFields is the structured field set extracted from a document corpus.
// Identifier fields are nil when not found; SAMStatus defaults to the literal
// "unknown", which rule R1 depends on.
type ParsedFields struct {
	UEI             *string               `json:"uei"`
	DUNS            *string               `json:"duns"`
	NAICS           []string              `json:"naics"`
	SAMStatus       string                `json:"sam_status"`
	POCEmail        *string               `json:"poc_email"`
	POCPhone        *string               `json:"poc_phone"`
	EntityName      *string               `json:"entity_name"`
	PastPerformance []PastPerformanceItem `json:"past_performance"`
	Pricing         PricingItems          `json:"pricing"`
}

// PastPerformanceItem is a single prior project reference (rule R3).
type PastPerformanceItem struct {
	Title    string  `json:"title"`
	Client   string  `json:"client"`
	Value    float64 `json:"value"`
	Duration string  `json:"duration"`
	Scope    string  `json:"scope"`
}

// PricingItem is a single labor-category rate entry (rule R4).
type PricingItem struct {
	LaborCategory string  `json:"labor_category"`
	Rate          float64 `json:"rate"`
	Hours         float64 `json:"hours"`
	Unit          string  `json:"unit"`
}

// PricingItems accepts both wire shapes the generative provider is known to
// produce: a JSON array of pricing items, or an object keyed by labor
// category. Objects are flattened in key order so decoding is deterministic.
type PricingItems []PricingItem

func (p *PricingItems) UnmarshalJSON(data []byte) error {
	var items []PricingItem
	if err := json.Unmarshal(data, &items); err == nil {
		*p = items
		return nil
	}

	var byCategory map[string]PricingItem
	if err := json.Unmarshal(data, &byCategory); err != nil {
		return err
	}
	keys := make([]string, 0, len(byCategory))
	for k := range byCategory {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items = make([]PricingItem, 0, len(byCategory))
	for _, k := range keys {
		item := byCategory[k]
		if item.LaborCategory == "" {
			item.LaborCategory = k
		}
		items = append(items, item)
	}
	*p = items
	return nil
}

// ComplianceProblem is a single failed rule check.
type ComplianceProblem struct {
	Code     string `json:"code"`
	RuleID   RuleID `json:"rule_id"`
	Evidence string `json:"evidence"`
}

// ComplianceChecklist is the ordered result of evaluating the rule pack.
// RequiredOK is true iff Problems is empty.
type ComplianceChecklist struct {
	RequiredOK bool                `json:"required_ok"`
	Problems   []ComplianceProblem `json:"problems"`
}

// RuleCitation is an excerpt of rule-pack text attached to an analysis.
type RuleCitation struct {
	RuleID RuleID `json:"rule_id"`
	Chunk  string `json:"chunk"`
}

// AnalysisResult is the canonical output of one analysis invocation,
// regardless of which path produced it.
type AnalysisResult struct {
	Parsed      ParsedFields        `json:"parsed"`
	Checklist   ComplianceChecklist `json:"checklist"`
	Brief       string              `json:"brief"`
	ClientEmail string              `json:"client_email"`
	Citations   []RuleCitation      `json:"citations"`
}

// SINMapping maps a NAICS industry code to a GSA Special Item Number.
type SINMapping struct {
	NAICS string `db:"naics" json:"naics"`
	SIN   string `db:"sin" json:"sin"`
	Title string `db:"title" json:"title"`
}
