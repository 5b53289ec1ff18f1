package events

import "context"

// PublishedEvent pairs an event with the channel it was published to.
type PublishedEvent struct {
	Channel string
	Event   Event
}

// ChannelPublisher is an in-process Publisher backed by a Go channel, used in
// tests and single-process deployments.
type ChannelPublisher struct {
	ch chan PublishedEvent
}

// NewChannelPublisher creates an in-process publisher.
func NewChannelPublisher() *ChannelPublisher {
	return &ChannelPublisher{
		ch: make(chan PublishedEvent, 100),
	}
}

// Publish enqueues the event. If the buffer is full the event is dropped,
// matching the best-effort contract of the real backends.
func (p *ChannelPublisher) Publish(ctx context.Context, tenantID string, event Event) error {
	select {
	case p.ch <- PublishedEvent{Channel: Channel(tenantID), Event: event}:
	default:
	}
	return nil
}

// Events returns the channel of published events.
func (p *ChannelPublisher) Events() <-chan PublishedEvent {
	return p.ch
}

// Close closes the underlying channel.
func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
