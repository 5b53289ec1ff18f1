package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/scalytics/thinktank/internal/config"
)

func TestBuildDepsMinimal(t *testing.T) {
	cfg := &config.Config{}
	cfg.Events.Backend = "none"

	deps, cleanup, err := buildDeps(context.Background(), cfg)
	if err != nil {
		t.Fatalf("buildDeps: %v", err)
	}
	defer cleanup()

	if deps.Provider == nil {
		t.Error("provider must always be wired")
	}
	if deps.Safety != nil {
		t.Error("safety must be disabled without a URL")
	}
	if deps.Events != nil {
		t.Error("events must be disabled for backend none")
	}
	if deps.Launcher != nil || deps.Objects != nil {
		t.Error("escalation must be disabled without a flyte admin URL")
	}
	if deps.History != nil {
		t.Error("history must be disabled without a db path")
	}
}

func TestBuildDepsHistory(t *testing.T) {
	cfg := &config.Config{}
	cfg.Events.Backend = "none"
	cfg.History.Path = filepath.Join(t.TempDir(), "runs.db")

	deps, cleanup, err := buildDeps(context.Background(), cfg)
	if err != nil {
		t.Fatalf("buildDeps: %v", err)
	}
	defer cleanup()

	if deps.History == nil {
		t.Fatal("history must be wired when a path is configured")
	}
}
