package events

import (
	"context"
	"testing"
	"time"
)

func TestPublisher_DeliversToSubscriber(t *testing.T) {
	publisher, err := NewPublisher("inproc://events-remote-test")
	if err != nil {
		t.Fatalf("NewPublisher failed: %v", err)
	}
	defer publisher.Close()

	subscriber, err := NewSubscriber("inproc://events-remote-test", "node")
	if err != nil {
		t.Fatalf("NewSubscriber failed: %v", err)
	}
	defer subscriber.Close()
	subscriber.SetRecvDeadline(2 * time.Second)

	// Give the inproc pipe a moment to connect before publishing.
	time.Sleep(50 * time.Millisecond)

	want := Event{Topic: "node", Kind: "Node", ID: "nml:sw1", Name: "Switch 1"}
	if err := publisher.Publish(want); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	got, err := subscriber.Recv()
	if err != nil {
		t.Fatalf("Recv failed: %v", err)
	}
	if got.ID != want.ID || got.Kind != want.Kind || got.Name != want.Name {
		t.Errorf("Recv = %+v, want %+v", got, want)
	}
}

func TestPublisher_ForwardsBusEvents(t *testing.T) {
	publisher, err := NewPublisher("inproc://events-forward-test")
	if err != nil {
		t.Fatalf("NewPublisher failed: %v", err)
	}
	defer publisher.Close()

	subscriber, err := NewSubscriber("inproc://events-forward-test")
	if err != nil {
		t.Fatalf("NewSubscriber failed: %v", err)
	}
	defer subscriber.Close()
	subscriber.SetRecvDeadline(2 * time.Second)

	bus := NewBus()
	defer bus.Shutdown()

	busSub, err := bus.Subscribe(context.Background(), "link")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	go publisher.Forward(busSub)

	time.Sleep(50 * time.Millisecond)
	bus.Publish("link", Event{Topic: "link", Kind: "Link", ID: "nml:l1"})

	got, err := subscriber.Recv()
	if err != nil {
		t.Fatalf("Recv failed: %v", err)
	}
	if got.ID != "nml:l1" {
		t.Errorf("forwarded event ID = %q, want nml:l1", got.ID)
	}
}
