package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Inference.BaseURL != "http://localhost:4000/v1" {
		t.Errorf("unexpected inference base url %q", cfg.Inference.BaseURL)
	}
	if cfg.Events.Backend != "nats" {
		t.Errorf("unexpected events backend %q", cfg.Events.Backend)
	}
	if cfg.Objects.Bucket != "radiant-data" {
		t.Errorf("unexpected bucket %q", cfg.Objects.Bucket)
	}
	if cfg.Flyte.Workflow != "think_tank_hitl_workflow" {
		t.Errorf("unexpected workflow %q", cfg.Flyte.Workflow)
	}
	if cfg.Flyte.Project != "thinktank" || cfg.Flyte.Domain != "production" {
		t.Errorf("unexpected flyte project/domain %q/%q", cfg.Flyte.Project, cfg.Flyte.Domain)
	}
	if cfg.Swarm.SynthesisModel != "gpt-4-turbo-preview" {
		t.Errorf("unexpected synthesis model %q", cfg.Swarm.SynthesisModel)
	}
	if cfg.Swarm.SynthesisTemperature != 0.3 || cfg.Swarm.SynthesisMaxTokens != 4096 {
		t.Errorf("unexpected synthesis tuning %f/%d",
			cfg.Swarm.SynthesisTemperature, cfg.Swarm.SynthesisMaxTokens)
	}
	if cfg.Swarm.CostPerThousandTokens != 0.002 {
		t.Errorf("unexpected cost rate %f", cfg.Swarm.CostPerThousandTokens)
	}
}

func TestLoadOptionalDefaultsEmpty(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Safety.URL != "" {
		t.Errorf("safety should be disabled by default, got %q", cfg.Safety.URL)
	}
	if cfg.Flyte.AdminURL != "" {
		t.Errorf("flyte should be disabled by default, got %q", cfg.Flyte.AdminURL)
	}
	if cfg.History.Path != "" {
		t.Errorf("history should be disabled by default, got %q", cfg.History.Path)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("THINKTANK_INFERENCE_BASE_URL", "https://gateway.internal/v1")
	t.Setenv("THINKTANK_SAFETY_URL", "https://safety.internal/check")
	t.Setenv("THINKTANK_EVENTS_BACKEND", "kafka")
	t.Setenv("THINKTANK_SYNTHESIS_MODEL", "gpt-4o")
	t.Setenv("THINKTANK_COST_PER_1K_TOKENS", "0.004")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Inference.BaseURL != "https://gateway.internal/v1" {
		t.Errorf("override not applied: %q", cfg.Inference.BaseURL)
	}
	if cfg.Safety.URL != "https://safety.internal/check" {
		t.Errorf("override not applied: %q", cfg.Safety.URL)
	}
	if cfg.Events.Backend != "kafka" {
		t.Errorf("override not applied: %q", cfg.Events.Backend)
	}
	if cfg.Swarm.SynthesisModel != "gpt-4o" {
		t.Errorf("override not applied: %q", cfg.Swarm.SynthesisModel)
	}
	if cfg.Swarm.CostPerThousandTokens != 0.004 {
		t.Errorf("override not applied: %f", cfg.Swarm.CostPerThousandTokens)
	}
}
