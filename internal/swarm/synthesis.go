package swarm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/scalytics/thinktank/internal/provider"
)

const (
	// Fixed confidence for a single surviving response. Deliberately not
	// computed: with one voice there is no agreement to measure.
	singleResponseConfidence = 0.7

	// Confidence when the synthesis call fails and the first response is
	// passed through instead.
	synthesisFallbackConfidence = 0.5

	reviewReasonNoResponses    = "No successful agent responses"
	reviewReasonLowAgreement   = "Low agent agreement"
	reviewReasonSynthesisError = "Synthesis failed, using first response"
)

// synthesize merges the surviving agent outputs into one answer and scores
// agreement among them. It degrades rather than fails: a broken synthesis
// call falls back to the first successful response.
func (o *Orchestrator) synthesize(ctx context.Context, req SwarmRequest, results []AgentResult) SynthesizedResult {
	var successes []AgentResult
	for _, r := range results {
		if r.Status == AgentSuccess {
			successes = append(successes, r)
		}
	}

	switch len(successes) {
	case 0:
		return SynthesizedResult{
			Response:            "",
			Confidence:          0,
			Sources:             []string{},
			RequiresHumanReview: true,
			ReviewReason:        reviewReasonNoResponses,
		}
	case 1:
		return SynthesizedResult{
			Response:   successes[0].Response,
			Confidence: singleResponseConfidence,
			Sources:    []string{successes[0].AgentID},
		}
	}

	sources := make([]string, len(successes))
	responses := make([]string, len(successes))
	for i, r := range successes {
		sources[i] = r.AgentID
		responses[i] = r.Response
	}

	merged, err := o.callSynthesisModel(ctx, req, successes)
	if err != nil {
		slog.Warn("synthesis call failed, falling back to first response",
			"tenant_id", req.TenantID, "error", err)
		return SynthesizedResult{
			Response:            successes[0].Response,
			Confidence:          synthesisFallbackConfidence,
			Sources:             sources,
			RequiresHumanReview: true,
			ReviewReason:        reviewReasonSynthesisError,
		}
	}

	agreement := meanPairwiseAgreement(responses, o.cfg.Similarity)
	result := SynthesizedResult{
		Response:   merged,
		Confidence: agreement,
		Sources:    sources,
	}
	if agreement < req.Options.minAgreement() {
		result.RequiresHumanReview = true
		result.ReviewReason = reviewReasonLowAgreement
	}
	return result
}

func (o *Orchestrator) callSynthesisModel(ctx context.Context, req SwarmRequest, successes []AgentResult) (string, error) {
	var sb strings.Builder
	sb.WriteString("You are a synthesis expert. Combine the following expert responses into a single coherent answer.\n\n")
	fmt.Fprintf(&sb, "Original question: %s\n\n", req.Task.Prompt)
	sb.WriteString("Expert responses:\n")
	for i, r := range successes {
		fmt.Fprintf(&sb, "Expert %d (%s): %s\n", i+1, r.AgentID, r.Response)
	}
	sb.WriteString("\nProvide a synthesized answer that incorporates the best insights from all experts.")

	resp, err := o.deps.Provider.Chat(ctx, &provider.ChatRequest{
		TenantID:    req.TenantID,
		Model:       o.cfg.SynthesisModel,
		Messages:    []provider.Message{{Role: "user", Content: sb.String()}},
		Temperature: o.cfg.SynthesisTemperature,
		MaxTokens:   o.cfg.SynthesisMaxTokens,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
