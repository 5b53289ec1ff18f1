package swarm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/scalytics/thinktank/internal/flyte"
)

// escalationPayload is the full request snapshot the durable workflow loads
// from the object store.
type escalationPayload struct {
	Task     SwarmTask          `json:"task"`
	Agents   []AgentConfig      `json:"agents"`
	Options  SwarmOptions       `json:"options"`
	Metadata escalationMetadata `json:"metadata"`
}

type escalationMetadata struct {
	TenantID  string `json:"tenant_id"`
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

// escalate hands the entire run off to the durable workflow engine: no agent
// runs locally. The request is serialized to the object store and the named
// workflow is launched with a pointer to it. Metrics stay zeroed because no
// local compute was spent.
func (o *Orchestrator) escalate(ctx context.Context, swarmID string, req SwarmRequest, start time.Time) SwarmResult {
	if o.deps.Objects == nil || o.deps.Launcher == nil {
		slog.Error("hitl requested but escalation collaborators are not configured",
			"swarm_id", swarmID, "tenant_id", req.TenantID)
		return o.failedResult(swarmID, req, start)
	}

	payload := escalationPayload{
		Task:    req.Task,
		Agents:  req.Agents,
		Options: req.Options,
		Metadata: escalationMetadata{
			TenantID:  req.TenantID,
			SessionID: req.SessionID,
			UserID:    req.UserID,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal escalation payload failed", "swarm_id", swarmID, "error", err)
		return o.failedResult(swarmID, req, start)
	}

	key := fmt.Sprintf("bronze/swarm-inputs/%s/%s.json", req.TenantID, swarmID)
	uri, err := o.deps.Objects.Put(ctx, key, body)
	if err != nil {
		slog.Error("escalation payload upload failed", "swarm_id", swarmID, "key", key, "error", err)
		return o.failedResult(swarmID, req, start)
	}

	execID, err := o.deps.Launcher.Launch(ctx, o.cfg.WorkflowName, flyte.LaunchInput{
		ObjectURI:  uri,
		SwarmID:    swarmID,
		TenantID:   req.TenantID,
		SessionID:  req.SessionID,
		UserID:     req.UserID,
		HITLDomain: req.Options.HITLDomain,
	})
	if err != nil {
		slog.Error("workflow launch failed", "swarm_id", swarmID, "workflow", o.cfg.WorkflowName, "error", err)
		return o.failedResult(swarmID, req, start)
	}

	slog.Info("swarm escalated to durable workflow",
		"swarm_id", swarmID, "workflow", o.cfg.WorkflowName, "execution_id", execID)

	return SwarmResult{
		SwarmID:          swarmID,
		Status:           RunPendingHuman,
		AgentResults:     []AgentResult{},
		FlyteExecutionID: execID,
		Metrics:          SwarmMetrics{},
	}
}
