package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scalytics/thinktank/internal/config"
	"github.com/scalytics/thinktank/internal/events"
	"github.com/scalytics/thinktank/internal/flyte"
	"github.com/scalytics/thinktank/internal/history"
	"github.com/scalytics/thinktank/internal/objectstore"
	"github.com/scalytics/thinktank/internal/provider"
	"github.com/scalytics/thinktank/internal/safety"
	"github.com/scalytics/thinktank/internal/swarm"
)

var runCmd = &cobra.Command{
	Use:   "run <request.json>",
	Short: "Execute a swarm request from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSwarm,
}

func runSwarm(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read request file: %w", err)
	}
	var req swarm.SwarmRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parse request file: %w", err)
	}

	deps, cleanup, err := buildDeps(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	orch := swarm.New(swarm.Config{
		WorkflowName:          cfg.Flyte.Workflow,
		CostPerThousandTokens: cfg.Swarm.CostPerThousandTokens,
		SynthesisModel:        cfg.Swarm.SynthesisModel,
		SynthesisTemperature:  cfg.Swarm.SynthesisTemperature,
		SynthesisMaxTokens:    cfg.Swarm.SynthesisMaxTokens,
	}, deps)

	res := orch.Execute(cmd.Context(), req)

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Println(string(out))

	switch res.Status {
	case swarm.RunCompleted:
		color.Green("swarm %s completed (%d/%d agents succeeded)",
			res.SwarmID, res.Metrics.SuccessCount, res.Metrics.AgentCount)
	case swarm.RunPartial:
		color.Yellow("swarm %s partial (%d/%d agents succeeded)",
			res.SwarmID, res.Metrics.SuccessCount, res.Metrics.AgentCount)
	case swarm.RunPendingHuman:
		color.Cyan("swarm %s pending human review (execution %s)",
			res.SwarmID, res.FlyteExecutionID)
	default:
		color.Red("swarm %s failed", res.SwarmID)
	}
	return nil
}

func buildDeps(ctx context.Context, cfg *config.Config) (swarm.Deps, func(), error) {
	deps := swarm.Deps{
		Provider: provider.NewClient(cfg.Inference.APIKey, cfg.Inference.BaseURL),
	}
	var closers []func()
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	if cfg.Safety.URL != "" {
		deps.Safety = safety.NewClient(cfg.Safety.URL)
	}

	switch cfg.Events.Backend {
	case "nats":
		pub, err := events.NewNATSPublisher(cfg.Events.NATSURL)
		if err != nil {
			return deps, cleanup, err
		}
		deps.Events = pub
		closers = append(closers, func() { pub.Close() })
	case "kafka":
		pub := events.NewKafkaPublisher(cfg.Events.KafkaBrokers, cfg.Events.KafkaTopic)
		deps.Events = pub
		closers = append(closers, func() { pub.Close() })
	}

	if cfg.Flyte.AdminURL != "" {
		deps.Launcher = flyte.NewClient(cfg.Flyte.AdminURL, cfg.Flyte.Project, cfg.Flyte.Domain)
		store, err := objectstore.NewS3Store(ctx, cfg.Objects.Bucket, cfg.Objects.Region)
		if err != nil {
			cleanup()
			return deps, func() {}, err
		}
		deps.Objects = store
	}

	if cfg.History.Path != "" {
		svc, err := history.NewService(cfg.History.Path)
		if err != nil {
			cleanup()
			return deps, func() {}, err
		}
		deps.History = svc
		closers = append(closers, func() { svc.Close() })
	}

	return deps, cleanup, nil
}
