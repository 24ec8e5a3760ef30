package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"verdicto/internal/config"
	"verdicto/internal/generator"
)

const (
	queryPath     = "/documents/query"
	providerName  = "rag"
	defaultMaxLen = 4 << 20
)

// Client implements port.TextGenerator against the RAG backend's document query endpoint.
type Client struct {
	baseURL  string
	apiToken string
	maxBytes int64
	client   *http.Client
}

// NewClient creates a RAG backend client from config.
func NewClient(cfg *config.GeneratorConfig) *Client {
	maxBytes := cfg.MaxResponseBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxLen
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		apiToken: cfg.APIToken,
		maxBytes: maxBytes,
		client:   &http.Client{Timeout: cfg.Timeout()},
	}
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Answer string `json:"answer"`
}

// Generate posts the prompt as a document query and returns the backend's answer.
// It makes a single attempt; any failure is returned as *generator.UpstreamError.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	bodyBytes, err := json.Marshal(queryRequest{Query: prompt})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+queryPath, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", generator.NewUpstreamError(providerName, 0, fmt.Errorf("calling document query: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return "", generator.NewUpstreamError(providerName, resp.StatusCode, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", generator.NewUpstreamError(providerName, resp.StatusCode,
			fmt.Errorf("document query error: %s", truncate(string(respBody), 500)))
	}

	var parsed queryResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", generator.NewUpstreamError(providerName, resp.StatusCode,
			fmt.Errorf("unmarshaling response: %w (raw: %s)", err, truncate(string(respBody), 500)))
	}

	return parsed.Answer, nil
}

// truncate shortens s to maxLen characters and drops invalid UTF-8 so the
// message is safe to persist.
func truncate(s string, maxLen int) string {
	s = strings.ToValidUTF8(s, "")
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
