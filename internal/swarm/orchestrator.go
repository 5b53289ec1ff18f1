package swarm

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/scalytics/thinktank/internal/events"
	"github.com/scalytics/thinktank/internal/flyte"
	"github.com/scalytics/thinktank/internal/history"
	"github.com/scalytics/thinktank/internal/objectstore"
	"github.com/scalytics/thinktank/internal/provider"
	"github.com/scalytics/thinktank/internal/safety"
)

// Flat placeholder rate, pending real per-model pricing in the catalog
// service.
const defaultCostPerThousandTokens = 0.002

// Config tunes the orchestrator. Zero values fall back to the documented
// defaults.
type Config struct {
	WorkflowName          string
	CostPerThousandTokens float64
	SynthesisModel        string
	SynthesisTemperature  float64
	SynthesisMaxTokens    int
	Similarity            SimilarityFunc
}

func (c *Config) applyDefaults() {
	if c.WorkflowName == "" {
		c.WorkflowName = flyte.DefaultWorkflow
	}
	if c.CostPerThousandTokens <= 0 {
		c.CostPerThousandTokens = defaultCostPerThousandTokens
	}
	if c.SynthesisModel == "" {
		c.SynthesisModel = "gpt-4-turbo-preview"
	}
	if c.SynthesisTemperature <= 0 {
		c.SynthesisTemperature = 0.3
	}
	if c.SynthesisMaxTokens <= 0 {
		c.SynthesisMaxTokens = 4096
	}
	if c.Similarity == nil {
		c.Similarity = JaccardSimilarity
	}
}

// Deps are the orchestrator's collaborators. Provider is required; the rest
// are optional. Nil Safety passes every response, nil Events disables
// notifications, nil History disables run records, and nil Objects/Launcher
// turn HITL requests into dispatch failures.
type Deps struct {
	Provider provider.InferenceProvider
	Safety   safety.Checker
	Objects  objectstore.Store
	Launcher flyte.Launcher
	Events   events.Publisher
	History  *history.Service
}

// Orchestrator runs agent swarms. Safe for concurrent use; each Execute call
// operates only on its own request data.
type Orchestrator struct {
	cfg  Config
	deps Deps
}

// New creates an orchestrator.
func New(cfg Config, deps Deps) *Orchestrator {
	cfg.applyDefaults()
	return &Orchestrator{cfg: cfg, deps: deps}
}

// Execute runs one swarm request and never returns an error: every failure
// mode, including an internal panic, is encoded in the returned SwarmResult.
func (o *Orchestrator) Execute(ctx context.Context, req SwarmRequest) (res SwarmResult) {
	swarmID := uuid.NewString()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("swarm dispatch panicked", "swarm_id", swarmID, "panic", r)
			res = o.failedResult(swarmID, req, start)
			o.recordRun(req, res)
			o.publishEvent(req.TenantID, EventSwarmFailed, map[string]any{
				"swarm_id": swarmID,
				"error":    "internal dispatch failure",
			})
		}
	}()

	o.publishEvent(req.TenantID, EventSwarmStarted, map[string]any{
		"swarm_id":    swarmID,
		"mode":        req.Options.mode(),
		"agent_count": len(req.Agents),
	})

	if req.Options.EnableHITL {
		res = o.escalate(ctx, swarmID, req, start)
	} else {
		res = o.runLocal(ctx, swarmID, req, start)
	}

	o.recordRun(req, res)
	o.publishEvent(req.TenantID, terminalEventType(res.Status), terminalEventData(res))
	return res
}

func (o *Orchestrator) runLocal(ctx context.Context, swarmID string, req SwarmRequest, start time.Time) SwarmResult {
	if len(req.Agents) == 0 {
		slog.Warn("swarm request has no agents", "swarm_id", swarmID, "tenant_id", req.TenantID)
		return o.failedResult(swarmID, req, start)
	}

	results := o.runTopology(ctx, req)
	synthesis := o.synthesize(ctx, req, results)
	metrics := o.buildMetrics(start, results)

	return SwarmResult{
		SwarmID:      swarmID,
		Status:       runStatus(metrics),
		AgentResults: results,
		Synthesis:    &synthesis,
		Metrics:      metrics,
	}
}

// failedResult converts a dispatch failure into a well-formed result: no
// agent output survived, zero tokens and cost, latency measured up to the
// failure point.
func (o *Orchestrator) failedResult(swarmID string, req SwarmRequest, start time.Time) SwarmResult {
	return SwarmResult{
		SwarmID:      swarmID,
		Status:       RunFailed,
		AgentResults: []AgentResult{},
		Metrics: SwarmMetrics{
			TotalLatencyMs: time.Since(start).Milliseconds(),
			AgentCount:     len(req.Agents),
			FailureCount:   len(req.Agents),
		},
	}
}

func (o *Orchestrator) buildMetrics(start time.Time, results []AgentResult) SwarmMetrics {
	m := SwarmMetrics{
		TotalLatencyMs: time.Since(start).Milliseconds(),
		AgentCount:     len(results),
	}
	for _, r := range results {
		if r.Status == AgentSuccess {
			m.SuccessCount++
		} else {
			m.FailureCount++
		}
		m.TotalTokensUsed += r.TokensUsed
	}
	m.EstimatedCostUsd = float64(m.TotalTokensUsed) / 1000.0 * o.cfg.CostPerThousandTokens
	return m
}

func runStatus(m SwarmMetrics) string {
	switch {
	case m.SuccessCount == 0:
		return RunFailed
	case m.FailureCount == 0:
		return RunCompleted
	default:
		return RunPartial
	}
}

func terminalEventType(status string) string {
	switch status {
	case RunPendingHuman:
		return EventSwarmPendingHuman
	case RunFailed:
		return EventSwarmFailed
	default:
		return EventSwarmCompleted
	}
}

func terminalEventData(res SwarmResult) map[string]any {
	data := map[string]any{
		"swarm_id":      res.SwarmID,
		"status":        res.Status,
		"success_count": res.Metrics.SuccessCount,
		"failure_count": res.Metrics.FailureCount,
	}
	if res.Synthesis != nil {
		data["confidence"] = res.Synthesis.Confidence
	}
	if res.FlyteExecutionID != "" {
		data["flyte_execution_id"] = res.FlyteExecutionID
	}
	return data
}

// publishEvent is fire-and-forget: failures are logged and never alter the
// swarm result.
func (o *Orchestrator) publishEvent(tenantID, eventType string, data map[string]any) {
	if o.deps.Events == nil {
		return
	}
	evt := events.Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
	if err := o.deps.Events.Publish(context.Background(), tenantID, evt); err != nil {
		slog.Warn("event publish failed", "tenant_id", tenantID, "type", eventType, "error", err)
	}
}

// recordRun persists the run to history, best-effort.
func (o *Orchestrator) recordRun(req SwarmRequest, res SwarmResult) {
	if o.deps.History == nil {
		return
	}
	run := history.Run{
		SwarmID:          res.SwarmID,
		TenantID:         req.TenantID,
		SessionID:        req.SessionID,
		UserID:           req.UserID,
		Mode:             req.Options.mode(),
		Status:           res.Status,
		AgentCount:       res.Metrics.AgentCount,
		SuccessCount:     res.Metrics.SuccessCount,
		FailureCount:     res.Metrics.FailureCount,
		TotalLatencyMs:   res.Metrics.TotalLatencyMs,
		TotalTokens:      res.Metrics.TotalTokensUsed,
		EstimatedCostUsd: res.Metrics.EstimatedCostUsd,
		FlyteExecutionID: res.FlyteExecutionID,
	}
	if res.Synthesis != nil {
		confidence := res.Synthesis.Confidence
		run.Confidence = &confidence
	}
	if err := o.deps.History.RecordRun(run); err != nil {
		slog.Warn("history record failed", "swarm_id", res.SwarmID, "error", err)
	}
}
