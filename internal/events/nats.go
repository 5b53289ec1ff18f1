package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NATSPublisher publishes events to per-tenant NATS subjects. This is the
// default backend: a NATS subject carries the literal channel name from the
// interface contract.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to the given NATS URL.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

// Publish sends the event to the tenant's channel. Fire-and-forget: there is
// no delivery confirmation and no retry.
func (p *NATSPublisher) Publish(ctx context.Context, tenantID string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.conn.Publish(Channel(tenantID), data)
}

// Close drains the connection.
func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}
