// Package llm talks to the remote text-understanding services that turn
// pasted free text into a structured category/task plan. Responses are
// raw JSON whose shape the caller must still normalize; nothing here is
// trusted beyond "it decoded".
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNoAPIKey means the provider was constructed without credentials.
var ErrNoAPIKey = errors.New("llm: api key not configured")

const requestTimeout = 20 * time.Second

// Provider extracts a structured plan from free text. Implementations
// return the model's raw JSON payload.
type Provider interface {
	Name() string
	ExtractPlan(ctx context.Context, text string) (json.RawMessage, error)
}

// Chain tries each provider in order and returns the first success. The
// original service tried Gemini first and fell through to OpenAI.
type Chain struct {
	Providers []Provider
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) ExtractPlan(ctx context.Context, text string) (json.RawMessage, error) {
	var lastErr error = ErrNoAPIKey
	for _, p := range c.Providers {
		raw, err := p.ExtractPlan(ctx, text)
		if err == nil {
			return raw, nil
		}
		lastErr = fmt.Errorf("%s: %w", p.Name(), err)
	}
	return nil, lastErr
}

// stripFences peels a ```json ... ``` wrapper off a model response,
// keeping everything from the first bracket/brace to the last.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		start := strings.IndexAny(s, "[{")
		if start >= 0 {
			s = s[start:]
		}
	}
	if strings.HasSuffix(s, "```") {
		end := strings.LastIndexAny(s, "]}")
		if end >= 0 {
			s = s[:end+1]
		}
	}
	return strings.TrimSpace(s)
}

// asPlanJSON validates and returns the cleaned response body.
func asPlanJSON(text string) (json.RawMessage, error) {
	cleaned := stripFences(text)
	if cleaned == "" {
		return nil, errors.New("empty response")
	}
	if !json.Valid([]byte(cleaned)) {
		return nil, errors.New("response is not valid JSON")
	}
	return json.RawMessage(cleaned), nil
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}
