// Package flyte launches durable workflows on a Flyte deployment. The engine
// does not implement or track workflow execution; it only owns the handoff
// contract at the launch boundary.
package flyte

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultWorkflow is the durable workflow that supervises HITL swarm runs.
const DefaultWorkflow = "think_tank_hitl_workflow"

// LaunchInput is the input contract of the HITL workflow. Field names match
// the workflow's parameters.
type LaunchInput struct {
	ObjectURI  string `json:"s3_uri"`
	SwarmID    string `json:"swarm_id"`
	TenantID   string `json:"tenant_id"`
	SessionID  string `json:"session_id"`
	UserID     string `json:"user_id"`
	HITLDomain string `json:"hitl_domain"`
}

// Launcher starts a named durable workflow and returns its execution ID.
type Launcher interface {
	Launch(ctx context.Context, workflow string, input LaunchInput) (string, error)
}

// Client launches workflows through the Flyte Admin HTTP API.
type Client struct {
	adminURL   string
	project    string
	domain     string
	httpClient *http.Client
}

// NewClient creates a launcher for the given Flyte Admin endpoint.
func NewClient(adminURL, project, domain string) *Client {
	if project == "" {
		project = "thinktank"
	}
	if domain == "" {
		domain = "production"
	}
	return &Client{
		adminURL: strings.TrimSuffix(adminURL, "/"),
		project:  project,
		domain:   domain,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Launch creates an execution of the named workflow and returns the
// execution identifier assigned by Flyte Admin.
func (c *Client) Launch(ctx context.Context, workflow string, input LaunchInput) (string, error) {
	body, err := json.Marshal(createExecutionRequest{
		Project:  c.project,
		Domain:   c.domain,
		Workflow: workflow,
		Inputs:   input,
	})
	if err != nil {
		return "", fmt.Errorf("marshal launch request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.adminURL+"/api/v1/executions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("flyte admin error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var apiResp createExecutionResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if apiResp.ID.Name == "" {
		return "", fmt.Errorf("no execution id in response")
	}
	return apiResp.ID.Name, nil
}

// Flyte Admin wire types.
type createExecutionRequest struct {
	Project  string      `json:"project"`
	Domain   string      `json:"domain"`
	Workflow string      `json:"workflow"`
	Inputs   LaunchInput `json:"inputs"`
}

type createExecutionResponse struct {
	ID struct {
		Project string `json:"project"`
		Domain  string `json:"domain"`
		Name    string `json:"name"`
	} `json:"id"`
}
