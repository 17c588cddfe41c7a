package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"motorpool/contexts/fleet-operations/assignment-service/ports"
)

func TestPublishReachesSubscriber(t *testing.T) {
	bus, err := NewKafka(nil, nil)
	if err != nil {
		t.Fatalf("new bus: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan ports.EventEnvelope, 1)
	err = bus.Subscribe(ctx, "fleet.assignments", "test-consumer", func(_ context.Context, event ports.EventEnvelope) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	sent := ports.EventEnvelope{
		EventID:       "evt-1",
		EventType:     "assignment.created",
		OccurredAt:    time.Now().UTC(),
		SourceService: "assignment-service",
		SchemaVersion: 1,
		PartitionKey:  "car-1",
		Data:          json.RawMessage(`{"car_id":"car-1"}`),
	}
	if err := bus.Publish(ctx, "fleet.assignments", sent); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case got := <-received:
		if got.EventID != sent.EventID || got.EventType != sent.EventType {
			t.Fatalf("unexpected event: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("subscriber did not receive event")
	}
}

func TestPublishSkipsOtherTopics(t *testing.T) {
	bus, err := NewKafka(nil, nil)
	if err != nil {
		t.Fatalf("new bus: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan ports.EventEnvelope, 1)
	err = bus.Subscribe(ctx, "fleet.assignments", "test-consumer", func(_ context.Context, event ports.EventEnvelope) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := bus.Publish(ctx, "other.topic", ports.EventEnvelope{EventID: "evt-2"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case got := <-received:
		t.Fatalf("subscriber received event from wrong topic: %+v", got)
	case <-time.After(100 * time.Millisecond):
	}
}
