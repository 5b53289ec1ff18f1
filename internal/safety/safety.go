// Package safety implements the content-safety gateway client.
//
// The gateway is optional. A nil Checker in the orchestrator means every
// response passes; an unreachable gateway is treated as passing by the
// caller (fail-open), which is a deliberate availability-over-strict-safety
// trade-off pending product review.
package safety

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CheckResult is the safety gateway's verdict on one piece of content.
type CheckResult struct {
	Passed     bool     `json:"passed"`
	Violations []string `json:"violations"`
}

// Checker is the interface for content-safety checks.
type Checker interface {
	Check(ctx context.Context, tenantID, content string) (*CheckResult, error)
}

// Client is a pass-through HTTP client for the safety gateway. It holds no
// local policy logic.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a safety gateway client for the given endpoint.
func NewClient(url string) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Check submits content to the safety gateway. Unreachable or non-2xx
// responses surface as errors; the caller decides the fail-open policy.
func (c *Client) Check(ctx context.Context, tenantID, content string) (*CheckResult, error) {
	body, err := json.Marshal(checkRequest{Content: content})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if tenantID != "" {
		httpReq.Header.Set("X-Tenant-ID", tenantID)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("safety gateway error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result CheckResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &result, nil
}

type checkRequest struct {
	Content string `json:"content"`
}
