package swarm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/scalytics/thinktank/internal/provider"
)

// executeAgent runs one agent against the shared task prompt under its own
// deadline and turns any outcome, including a panic, into a typed
// AgentResult. Failures never propagate past this function.
func (o *Orchestrator) executeAgent(ctx context.Context, req SwarmRequest, agent AgentConfig, timeout time.Duration, guidance string) (res AgentResult) {
	start := time.Now()
	res = AgentResult{AgentID: agent.AgentID}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("agent execution panicked", "agent_id", agent.AgentID, "panic", r)
			res.Status = AgentFailed
			res.Error = fmt.Sprintf("panic: %v", r)
			res.SafetyPassed = false
			res.LatencyMs = time.Since(start).Milliseconds()
		}
	}()

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	prompt := req.Task.Prompt
	if guidance != "" {
		prompt = prompt + "\n\nCoordinator guidance: " + guidance
	}

	var messages []provider.Message
	if req.Task.SystemPrompt != "" {
		messages = append(messages, provider.Message{Role: "system", Content: req.Task.SystemPrompt})
	}
	messages = append(messages, provider.Message{Role: "user", Content: prompt})

	resp, err := o.deps.Provider.Chat(callCtx, &provider.ChatRequest{
		TenantID:    req.TenantID,
		Model:       agent.Model,
		Messages:    messages,
		Temperature: agent.Temperature,
		MaxTokens:   agent.MaxTokens,
	})
	if err != nil {
		res.LatencyMs = time.Since(start).Milliseconds()
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded {
			res.Status = AgentTimeout
			res.Error = fmt.Sprintf("agent timed out after %dms", timeout.Milliseconds())
		} else {
			res.Status = AgentFailed
			res.Error = err.Error()
		}
		return res
	}

	if o.deps.Safety != nil {
		check, err := o.deps.Safety.Check(callCtx, req.TenantID, resp.Content)
		if err != nil {
			// Fail open: availability over strict safety, pending product
			// review.
			slog.Warn("safety check unreachable, passing content through",
				"agent_id", agent.AgentID, "tenant_id", req.TenantID, "error", err)
		} else if !check.Passed {
			res.Status = AgentRejected
			res.Error = "response rejected by safety check"
			res.SafetyPassed = false
			res.SafetyViolations = check.Violations
			res.LatencyMs = time.Since(start).Milliseconds()
			return res
		}
	}

	res.Status = AgentSuccess
	res.Response = resp.Content
	res.TokensUsed = resp.Usage.TotalTokens
	res.SafetyPassed = true
	res.LatencyMs = time.Since(start).Milliseconds()
	return res
}
