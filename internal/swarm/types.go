// Package swarm implements the scatter-gather multi-agent orchestration
// engine. A swarm runs a set of agent configurations against one task under a
// chosen topology, screens each response through the safety gateway,
// synthesizes the surviving answers, and optionally hands the whole run off
// to a durable Flyte workflow for human-in-the-loop supervision.
package swarm

import "time"

// Execution modes.
const (
	ModeParallel     = "parallel"
	ModeSequential   = "sequential"
	ModeHierarchical = "hierarchical"
)

// Per-agent terminal statuses.
const (
	AgentSuccess  = "success"
	AgentFailed   = "failed"
	AgentTimeout  = "timeout"
	AgentRejected = "rejected"
)

// Swarm run statuses.
const (
	RunCompleted    = "completed"
	RunPartial      = "partial"
	RunFailed       = "failed"
	RunPendingHuman = "pending_human"
)

// Event types published to the per-tenant notification channel.
const (
	EventSwarmStarted      = "swarm_started"
	EventSwarmCompleted    = "swarm_completed"
	EventSwarmFailed       = "swarm_failed"
	EventSwarmPendingHuman = "swarm_pending_human"
)

// Option defaults.
const (
	DefaultPerAgentTimeoutMs = 30000
	DefaultMinAgentAgreement = 0.6
)

// SwarmRequest is the full input of one orchestration run. It is treated as
// immutable once submitted.
type SwarmRequest struct {
	TenantID  string        `json:"tenant_id"`
	SessionID string        `json:"session_id"`
	UserID    string        `json:"user_id"`
	Task      SwarmTask     `json:"task"`
	Agents    []AgentConfig `json:"agents"`
	Options   SwarmOptions  `json:"options"`
}

// SwarmTask is the unit of work shared by all agents in a run. Every agent
// receives the same prompt; hierarchical mode prefixes worker prompts with
// coordinator guidance.
type SwarmTask struct {
	Type         string         `json:"type"` // chat, research, code, analysis, creative
	Prompt       string         `json:"prompt"`
	Context      map[string]any `json:"context,omitempty"`
	Attachments  []string       `json:"attachments,omitempty"`
	SystemPrompt string         `json:"system_prompt,omitempty"`
}

// AgentConfig describes one participant in the swarm. AgentID must be unique
// within a request.
type AgentConfig struct {
	AgentID     string   `json:"agent_id"`
	Role        string   `json:"role"`
	Model       string   `json:"model"`
	Temperature float64  `json:"temperature,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
	Tools       []string `json:"tools,omitempty"`
}

// SwarmOptions tunes a single run. Zero values fall back to the documented
// defaults.
type SwarmOptions struct {
	Mode              string  `json:"mode,omitempty"`
	TimeoutMs         int     `json:"timeout_ms,omitempty"`
	PerAgentTimeoutMs int     `json:"per_agent_timeout_ms,omitempty"`
	EnableHITL        bool    `json:"enable_hitl,omitempty"`
	HITLDomain        string  `json:"hitl_domain,omitempty"`
	QualityThreshold  float64 `json:"quality_threshold,omitempty"`
	ConsensusRequired bool    `json:"consensus_required,omitempty"`
	MinAgentAgreement float64 `json:"min_agent_agreement,omitempty"`
}

func (o SwarmOptions) mode() string {
	switch o.Mode {
	case ModeSequential, ModeHierarchical:
		return o.Mode
	default:
		return ModeParallel
	}
}

func (o SwarmOptions) perAgentTimeout() time.Duration {
	ms := o.PerAgentTimeoutMs
	if ms <= 0 {
		ms = DefaultPerAgentTimeoutMs
	}
	return time.Duration(ms) * time.Millisecond
}

func (o SwarmOptions) minAgreement() float64 {
	if o.MinAgentAgreement <= 0 {
		return DefaultMinAgentAgreement
	}
	return o.MinAgentAgreement
}

// AgentResult is produced exactly once per agent that is actually invoked.
type AgentResult struct {
	AgentID          string   `json:"agent_id"`
	Status           string   `json:"status"`
	Response         string   `json:"response,omitempty"`
	Error            string   `json:"error,omitempty"`
	LatencyMs        int64    `json:"latency_ms"`
	TokensUsed       int      `json:"tokens_used,omitempty"`
	SafetyPassed     bool     `json:"safety_passed"`
	SafetyViolations []string `json:"safety_violations,omitempty"`
}

// SynthesizedResult is the consensus-aware merge of the surviving agent
// outputs.
type SynthesizedResult struct {
	Response            string   `json:"response"`
	Confidence          float64  `json:"confidence"`
	Sources             []string `json:"sources"`
	RequiresHumanReview bool     `json:"requires_human_review"`
	ReviewReason        string   `json:"review_reason,omitempty"`
}

// SwarmMetrics aggregates per-run accounting.
type SwarmMetrics struct {
	TotalLatencyMs   int64   `json:"total_latency_ms"`
	AgentCount       int     `json:"agent_count"`
	SuccessCount     int     `json:"success_count"`
	FailureCount     int     `json:"failure_count"`
	TotalTokensUsed  int     `json:"total_tokens_used"`
	EstimatedCostUsd float64 `json:"estimated_cost_usd"`
}

// SwarmResult is the single object the caller receives. Execute never returns
// an error; every failure mode is encoded here. SwarmID is a fresh UUID per
// call, so there is no idempotency across retries.
type SwarmResult struct {
	SwarmID           string             `json:"swarm_id"`
	Status            string             `json:"status"`
	AgentResults      []AgentResult      `json:"agent_results"`
	Synthesis         *SynthesizedResult `json:"synthesis,omitempty"`
	PendingDecisionID string             `json:"pending_decision_id,omitempty"`
	FlyteExecutionID  string             `json:"flyte_execution_id,omitempty"`
	Metrics           SwarmMetrics       `json:"metrics"`
}
