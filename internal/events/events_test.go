package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func testEvent(eventType string) Event {
	return Event{
		Type:      eventType,
		Data:      map[string]any{"swarm_id": "swarm-1"},
		Timestamp: time.Now().UTC(),
	}
}

func TestChannelNaming(t *testing.T) {
	if got := Channel("acme"); got != "swarm_event:acme" {
		t.Errorf("unexpected channel %q", got)
	}
}

func TestEventWireFormat(t *testing.T) {
	data, err := json.Marshal(testEvent("swarm_started"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"type", "data", "timestamp"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("event envelope missing %q", key)
		}
	}
}

func TestChannelPublisherDelivers(t *testing.T) {
	pub := NewChannelPublisher()
	defer pub.Close()

	if err := pub.Publish(context.Background(), "acme", testEvent("swarm_started")); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	got := <-pub.Events()
	if got.Channel != "swarm_event:acme" {
		t.Errorf("unexpected channel %q", got.Channel)
	}
	if got.Event.Type != "swarm_started" {
		t.Errorf("unexpected type %q", got.Event.Type)
	}
}

func TestChannelPublisherDropsWhenFull(t *testing.T) {
	pub := NewChannelPublisher()
	defer pub.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 150; i++ {
			pub.Publish(context.Background(), "acme", testEvent("swarm_started"))
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full buffer")
	}
	if n := len(pub.Events()); n > 100 {
		t.Errorf("buffer should cap at 100, got %d", n)
	}
}
