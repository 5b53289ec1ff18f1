package swarm

import (
	"context"
	"testing"
	"time"
)

func TestExecuteAgentBuildsMessages(t *testing.T) {
	prov := &stubProvider{responses: map[string]stubResponse{
		"m1": {content: "ok"},
	}}
	o := newTestOrchestrator(prov, Deps{})

	req := testRequest(ModeParallel)
	req.Task.SystemPrompt = "You are terse."

	res := o.executeAgent(context.Background(), req, agentCfg("a", "m1"), time.Second, "")
	if res.Status != AgentSuccess {
		t.Fatalf("expected success, got %s", res.Status)
	}

	msgs := prov.calls[0].Messages
	if len(msgs) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(msgs))
	}
	if msgs[0].Role != "system" || msgs[0].Content != "You are terse." {
		t.Errorf("unexpected system message %+v", msgs[0])
	}
	if msgs[1].Role != "user" || msgs[1].Content != req.Task.Prompt {
		t.Errorf("unexpected user message %+v", msgs[1])
	}
}

func TestExecuteAgentOmitsSystemMessageWhenUnset(t *testing.T) {
	prov := &stubProvider{responses: map[string]stubResponse{
		"m1": {content: "ok"},
	}}
	o := newTestOrchestrator(prov, Deps{})

	o.executeAgent(context.Background(), testRequest(ModeParallel), agentCfg("a", "m1"), time.Second, "")

	msgs := prov.calls[0].Messages
	if len(msgs) != 1 || msgs[0].Role != "user" {
		t.Errorf("expected only a user message, got %+v", msgs)
	}
}

func TestExecuteAgentAppendsGuidance(t *testing.T) {
	prov := &stubProvider{responses: map[string]stubResponse{
		"m1": {content: "ok"},
	}}
	o := newTestOrchestrator(prov, Deps{})

	req := testRequest(ModeParallel)
	o.executeAgent(context.Background(), req, agentCfg("a", "m1"), time.Second, "look at supply")

	got := prov.calls[0].Messages[0].Content
	want := req.Task.Prompt + "\n\nCoordinator guidance: look at supply"
	if got != want {
		t.Errorf("expected prompt %q, got %q", want, got)
	}
}

func TestExecuteAgentTimeoutStatus(t *testing.T) {
	prov := &stubProvider{responses: map[string]stubResponse{
		"m1": {content: "late", delay: time.Second},
	}}
	o := newTestOrchestrator(prov, Deps{})

	res := o.executeAgent(context.Background(), testRequest(ModeParallel), agentCfg("a", "m1"), 50*time.Millisecond, "")

	if res.Status != AgentTimeout {
		t.Fatalf("expected timeout, got %s", res.Status)
	}
	if res.Error != "agent timed out after 50ms" {
		t.Errorf("unexpected error message %q", res.Error)
	}
	if res.Response != "" || res.TokensUsed != 0 {
		t.Error("timed-out agent must not carry output")
	}
	if res.LatencyMs < 50 {
		t.Errorf("latency must cover the wait, got %dms", res.LatencyMs)
	}
}

func TestExecuteAgentRecoversPanic(t *testing.T) {
	prov := &stubProvider{responses: map[string]stubResponse{
		"m1": {panics: true},
	}}
	o := newTestOrchestrator(prov, Deps{})

	res := o.executeAgent(context.Background(), testRequest(ModeParallel), agentCfg("a", "m1"), time.Second, "")

	if res.Status != AgentFailed {
		t.Fatalf("expected failed, got %s", res.Status)
	}
	if res.Error == "" {
		t.Error("panic must surface in the error field")
	}
}
