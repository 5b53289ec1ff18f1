package swarm

import (
	"encoding/json"
	"testing"
	"time"
)

func TestOptionsModeDefaults(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ModeParallel},
		{"parallel", ModeParallel},
		{"sequential", ModeSequential},
		{"hierarchical", ModeHierarchical},
		{"bogus", ModeParallel},
	}
	for _, tt := range tests {
		opts := SwarmOptions{Mode: tt.in}
		if got := opts.mode(); got != tt.want {
			t.Errorf("mode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOptionsTimeoutDefaults(t *testing.T) {
	var opts SwarmOptions
	if got := opts.perAgentTimeout(); got != 30*time.Second {
		t.Errorf("default per-agent timeout = %v, want 30s", got)
	}
	opts.PerAgentTimeoutMs = 500
	if got := opts.perAgentTimeout(); got != 500*time.Millisecond {
		t.Errorf("per-agent timeout = %v, want 500ms", got)
	}
}

func TestOptionsAgreementDefaults(t *testing.T) {
	var opts SwarmOptions
	if got := opts.minAgreement(); got != 0.6 {
		t.Errorf("default min agreement = %f, want 0.6", got)
	}
	opts.MinAgentAgreement = 0.8
	if got := opts.minAgreement(); got != 0.8 {
		t.Errorf("min agreement = %f, want 0.8", got)
	}
}

func TestSwarmRequestWireFormat(t *testing.T) {
	raw := `{
		"tenant_id": "acme",
		"session_id": "s1",
		"user_id": "u1",
		"task": {"type": "analysis", "prompt": "why?", "system_prompt": "be terse"},
		"agents": [
			{"agent_id": "a", "role": "analyst", "model": "gpt-4", "temperature": 0.2}
		],
		"options": {"mode": "hierarchical", "enable_hitl": true, "hitl_domain": "legal"}
	}`

	var req SwarmRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.TenantID != "acme" || req.Task.Prompt != "why?" {
		t.Errorf("request fields mismatch: %+v", req)
	}
	if len(req.Agents) != 1 || req.Agents[0].Model != "gpt-4" {
		t.Errorf("agents mismatch: %+v", req.Agents)
	}
	if req.Options.Mode != ModeHierarchical || !req.Options.EnableHITL || req.Options.HITLDomain != "legal" {
		t.Errorf("options mismatch: %+v", req.Options)
	}
}

func TestSwarmResultWireFormat(t *testing.T) {
	res := SwarmResult{
		SwarmID:      "swarm-1",
		Status:       RunCompleted,
		AgentResults: []AgentResult{{AgentID: "a", Status: AgentSuccess, SafetyPassed: true}},
		Synthesis:    &SynthesizedResult{Response: "answer", Confidence: 0.9, Sources: []string{"a"}},
	}
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"swarm_id", "status", "agent_results", "synthesis", "metrics"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("result missing %q", key)
		}
	}
	if _, ok := raw["flyte_execution_id"]; ok {
		t.Error("empty flyte_execution_id must be omitted")
	}
}
