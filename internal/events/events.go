// Package events publishes best-effort swarm progress notifications.
//
// The notification channel is purely observational: publish failures are
// logged by the caller and never alter a swarm result, and no backend
// retries. Backends share the Publisher interface so deployments can pick
// NATS, Kafka, or an in-process channel.
package events

import (
	"context"
	"time"
)

// Event is the envelope published at each swarm state transition.
type Event struct {
	Type      string         `json:"type"`
	Data      map[string]any `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

// Publisher delivers events to a per-tenant channel, best-effort.
type Publisher interface {
	Publish(ctx context.Context, tenantID string, event Event) error
	Close() error
}

// Channel returns the per-tenant notification channel name.
func Channel(tenantID string) string {
	return "swarm_event:" + tenantID
}
