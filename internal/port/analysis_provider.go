package port

import "context"

// AnalysisProvider abstracts a generative completion backend. Complete sends
// one prompt pair and returns the raw response body; the caller owns JSON
// decoding and schema validation. Implementations make a single attempt with
// no internal retry.
type AnalysisProvider interface {
	Name() string
	Model() string
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
