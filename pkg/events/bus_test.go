package events

import (
	"context"
	"testing"
	"time"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Shutdown()

	sub, err := bus.Subscribe(context.Background(), "node")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	ev := Event{Topic: "node", Kind: "Node", ID: "nml:sw1", At: time.Now()}
	bus.Publish("node", ev)

	select {
	case got := <-sub.Channel():
		if got.ID != "nml:sw1" {
			t.Errorf("got event for %q, want nml:sw1", got.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBus_TopicIsolation(t *testing.T) {
	bus := NewBus()
	defer bus.Shutdown()

	nodeSub, _ := bus.Subscribe(context.Background(), "node")
	linkSub, _ := bus.Subscribe(context.Background(), "link")

	bus.Publish("link", Event{Topic: "link", ID: "nml:l1"})

	select {
	case got := <-linkSub.Channel():
		if got.ID != "nml:l1" {
			t.Errorf("link subscriber got %q", got.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for link event")
	}

	select {
	case got := <-nodeSub.Channel():
		t.Errorf("node subscriber received link event %q", got.ID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Shutdown()

	sub, _ := bus.Subscribe(context.Background(), "node")
	if bus.SubscriberCount("node") != 1 {
		t.Fatalf("SubscriberCount = %d, want 1", bus.SubscriberCount("node"))
	}

	sub.Unsubscribe()
	if bus.SubscriberCount("node") != 0 {
		t.Errorf("SubscriberCount after unsubscribe = %d, want 0", bus.SubscriberCount("node"))
	}

	// Channel must be closed after unsubscribe
	if _, ok := <-sub.Channel(); ok {
		t.Errorf("channel still open after unsubscribe")
	}
}

func TestBus_SubscribeAfterShutdown(t *testing.T) {
	bus := NewBus()
	bus.Shutdown()

	if _, err := bus.Subscribe(context.Background(), "node"); err != ErrBusClosed {
		t.Errorf("Subscribe after shutdown = %v, want ErrBusClosed", err)
	}

	// Publish after shutdown must not panic
	bus.Publish("node", Event{ID: "nml:sw1"})
}

func TestBus_ConcurrentPublishUnsubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Shutdown()

	// Publishing while subscriptions come and go must never send on a
	// closed channel. Run with -race to check the close/send ordering.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 2000; i++ {
			bus.Publish("node", Event{Topic: "node", ID: "nml:sw1"})
		}
	}()

	for i := 0; i < 500; i++ {
		sub, err := bus.Subscribe(context.Background(), "node")
		if err != nil {
			t.Fatalf("Subscribe failed: %v", err)
		}
		sub.Unsubscribe()
	}

	<-done
}

func TestBus_ConcurrentPublishShutdown(t *testing.T) {
	bus := NewBus()

	var subs []*Subscription
	for i := 0; i < 8; i++ {
		sub, err := bus.Subscribe(context.Background(), "node")
		if err != nil {
			t.Fatalf("Subscribe failed: %v", err)
		}
		subs = append(subs, sub)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 2000; i++ {
			bus.Publish("node", Event{Topic: "node", ID: "nml:sw1"})
		}
	}()

	bus.Shutdown()
	<-done

	for _, sub := range subs {
		for range sub.Channel() {
		}
	}
}

func TestBus_ContextCancelReleasesSubscription(t *testing.T) {
	bus := NewBus()
	defer bus.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	bus.Subscribe(ctx, "node")
	cancel()

	deadline := time.Now().Add(time.Second)
	for bus.SubscriberCount("node") != 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscription not released after context cancel")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
