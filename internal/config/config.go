// Package config provides environment-driven configuration for thinktank.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is the root configuration struct. All values come from the
// environment with THINKTANK_-prefixed or bare variable names.
type Config struct {
	Inference InferenceConfig
	Safety    SafetyConfig
	Events    EventsConfig
	Objects   ObjectStoreConfig
	Flyte     FlyteConfig
	History   HistoryConfig
	Swarm     SwarmConfig
}

// InferenceConfig points at the chat-completion gateway (LiteLLM proxy in
// production).
type InferenceConfig struct {
	BaseURL string `envconfig:"INFERENCE_BASE_URL" default:"http://localhost:4000/v1"`
	APIKey  string `envconfig:"INFERENCE_API_KEY"`
}

// SafetyConfig points at the content-safety gateway. Empty URL disables the
// check entirely (every response passes).
type SafetyConfig struct {
	URL string `envconfig:"SAFETY_URL"`
}

// EventsConfig selects the notification backend.
type EventsConfig struct {
	Backend      string `envconfig:"EVENTS_BACKEND" default:"nats"` // nats, kafka, none
	NATSURL      string `envconfig:"EVENTS_NATS_URL" default:"nats://localhost:4222"`
	KafkaBrokers string `envconfig:"EVENTS_KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic   string `envconfig:"EVENTS_KAFKA_TOPIC" default:"swarm_event"`
}

// ObjectStoreConfig locates the bucket HITL handoff payloads are written to.
type ObjectStoreConfig struct {
	Bucket string `envconfig:"OBJECT_STORE_BUCKET" default:"radiant-data"`
	Region string `envconfig:"OBJECT_STORE_REGION" default:"us-east-1"`
}

// FlyteConfig locates the durable workflow engine. Empty AdminURL disables
// HITL escalation.
type FlyteConfig struct {
	AdminURL string `envconfig:"FLYTE_ADMIN_URL"`
	Project  string `envconfig:"FLYTE_PROJECT" default:"thinktank"`
	Domain   string `envconfig:"FLYTE_DOMAIN" default:"production"`
	Workflow string `envconfig:"FLYTE_WORKFLOW" default:"think_tank_hitl_workflow"`
}

// HistoryConfig locates the sqlite run store. Empty path disables run
// history.
type HistoryConfig struct {
	Path string `envconfig:"HISTORY_DB_PATH"`
}

// SwarmConfig tunes synthesis and cost accounting.
type SwarmConfig struct {
	SynthesisModel       string  `envconfig:"SYNTHESIS_MODEL" default:"gpt-4-turbo-preview"`
	SynthesisTemperature float64 `envconfig:"SYNTHESIS_TEMPERATURE" default:"0.3"`
	SynthesisMaxTokens   int     `envconfig:"SYNTHESIS_MAX_TOKENS" default:"4096"`
	// Flat placeholder rate; per-model pricing lives in the model catalog
	// service, outside this subsystem.
	CostPerThousandTokens float64 `envconfig:"COST_PER_1K_TOKENS" default:"0.002"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("thinktank", &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	return &cfg, nil
}
