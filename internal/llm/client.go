// Package llm talks to the Gemini API: it picks a usable model from the live
// catalog, assembles the chat prompt, and recovers a structured reply from
// whatever text the model sends back.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("llm: empty response from model")

// Client is a thin wrapper around the official genai client. It is
// constructed once at process start and passed into request handlers; there
// is no ambient process-scoped configuration.
type Client struct {
	cli *genai.Client
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create gemini client: %w", err)
	}
	return &Client{cli: cli}, nil
}

// ModelInfo is the slice of a catalog entry the resolver needs.
type ModelInfo struct {
	Name             string
	SupportedActions []string
}

// ListModels fetches the live model catalog for the caller's credentials.
// Availability varies by account tier, so this is re-fetched per request
// rather than cached.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var out []ModelInfo
	for m, err := range c.cli.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("llm: list models: %w", err)
		}
		out = append(out, ModelInfo{Name: m.Name, SupportedActions: m.SupportedActions})
	}
	return out, nil
}

// Generate sends the prompt to the given model and returns the raw reply
// text. Formatting cleanup is the normalizer's job, not this method's.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.cli.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// IsRateLimited reports whether err is a provider quota or rate error.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Status == "RESOURCE_EXHAUSTED" {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit")
}
