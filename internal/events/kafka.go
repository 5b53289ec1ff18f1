package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/segmentio/kafka-go"
)

// DefaultKafkaTopic is the shared topic for all tenants. Kafka topic names
// cannot contain ':', so the per-tenant channel maps to the tenant ID as
// message key instead.
const DefaultKafkaTopic = "swarm_event"

// KafkaPublisher publishes events to a Kafka topic keyed by tenant.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for a comma-separated broker list.
func NewKafkaPublisher(brokers, topic string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultKafkaTopic
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(brokers, ",")...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

// Publish writes the event with the tenant ID as key, so one tenant's events
// stay ordered within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, tenantID string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(tenantID),
		Value: data,
	})
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
