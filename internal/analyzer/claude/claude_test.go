package claude

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"getgsa/internal/analyzer"
	"getgsa/internal/config"
)

func testConfig() *config.AnalyzerConfig {
	return &config.AnalyzerConfig{Provider: "claude", APIKey: "test-key", Model: "claude-sonnet-4-20250514", TimeoutSecs: 5}
}

func TestCompleteReturnsFirstTextBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-sonnet-4-20250514", req["model"])
		assert.Equal(t, "system prompt", req["system"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content":     []map[string]string{{"type": "text", "text": `{"ok": true}`}},
			"stop_reason": "end_turn",
		})
	}))
	defer srv.Close()

	p := NewProviderWithEndpoint(testConfig(), srv.URL)
	out, err := p.Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, out)
}

func TestCompleteRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewProviderWithEndpoint(testConfig(), srv.URL)
	_, err := p.Complete(context.Background(), "s", "u")
	require.Error(t, err)

	var rlErr *analyzer.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "claude", rlErr.Provider)
	assert.Equal(t, float64(30), rlErr.RetryAfter.Seconds())
}

func TestCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewProviderWithEndpoint(testConfig(), srv.URL)
	_, err := p.Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestCompleteTruncatedOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content":     []map[string]string{{"type": "text", "text": "partial"}},
			"stop_reason": "max_tokens",
		})
	}))
	defer srv.Close()

	p := NewProviderWithEndpoint(testConfig(), srv.URL)
	_, err := p.Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_tokens")
}

func TestDefaultsApplied(t *testing.T) {
	p := NewProvider(&config.AnalyzerConfig{Provider: "claude", APIKey: "k"})
	assert.Equal(t, "claude-sonnet-4-20250514", p.Model())
	assert.Equal(t, "claude", p.Name())
	assert.Equal(t, apiURL, p.endpoint)
}
