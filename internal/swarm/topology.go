package swarm

import (
	"context"
	"sync"
	"time"
)

// runTopology dispatches the request to the configured execution mode.
// Hierarchical mode needs a coordinator plus at least one worker; with fewer
// than two agents it degrades to parallel.
func (o *Orchestrator) runTopology(ctx context.Context, req SwarmRequest) []AgentResult {
	timeout := req.Options.perAgentTimeout()
	switch req.Options.mode() {
	case ModeSequential:
		return o.runSequential(ctx, req, timeout)
	case ModeHierarchical:
		if len(req.Agents) >= 2 {
			return o.runHierarchical(ctx, req, timeout)
		}
		return o.runParallel(ctx, req, req.Agents, timeout, "")
	default:
		return o.runParallel(ctx, req, req.Agents, timeout, "")
	}
}

// runParallel launches all agents concurrently and joins on every one of
// them, settle-all: a failing or slow agent never cancels or delays its
// siblings. This is the core isolation guarantee of the engine.
func (o *Orchestrator) runParallel(ctx context.Context, req SwarmRequest, agents []AgentConfig, timeout time.Duration, guidance string) []AgentResult {
	results := make([]AgentResult, len(agents))

	var wg sync.WaitGroup
	for i, agent := range agents {
		wg.Add(1)
		go func(i int, agent AgentConfig) {
			defer wg.Done()
			results[i] = o.executeAgent(ctx, req, agent, timeout, guidance)
		}(i, agent)
	}
	wg.Wait()

	return results
}

// runSequential executes agents in list order and stops after the first
// agent whose status is not success, so the result list is a strict prefix
// of the agent list ending at the first non-success, inclusive.
func (o *Orchestrator) runSequential(ctx context.Context, req SwarmRequest, timeout time.Duration) []AgentResult {
	results := make([]AgentResult, 0, len(req.Agents))
	for _, agent := range req.Agents {
		res := o.executeAgent(ctx, req, agent, timeout, "")
		results = append(results, res)
		if res.Status != AgentSuccess {
			break
		}
	}
	return results
}

// runHierarchical runs agents[0] alone as coordinator. If it does not
// succeed, the workers never run. On success its response becomes guidance
// for a settle-all parallel fan-out over the remaining agents.
func (o *Orchestrator) runHierarchical(ctx context.Context, req SwarmRequest, timeout time.Duration) []AgentResult {
	coordRes := o.executeAgent(ctx, req, req.Agents[0], timeout, "")
	if coordRes.Status != AgentSuccess {
		return []AgentResult{coordRes}
	}

	workers := o.runParallel(ctx, req, req.Agents[1:], timeout, coordRes.Response)
	return append([]AgentResult{coordRes}, workers...)
}
