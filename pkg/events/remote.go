package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/pub"
	"go.nanomsg.org/mangos/v3/protocol/sub"

	// Register all transports (tcp, ipc, inproc, ws)
	_ "go.nanomsg.org/mangos/v3/transport/all"
)

// ErrBusClosed is returned when subscribing to a shut-down bus.
var ErrBusClosed = errors.New("event bus is shut down")

// Publisher forwards namespace events to remote subscribers over a
// nanomsg/mangos PUB socket. Messages are framed as "topic|json" so SUB
// sockets can filter on the topic prefix.
type Publisher struct {
	sock mangos.Socket
	done chan struct{}
}

// NewPublisher opens a PUB socket listening on addr
// (e.g. "tcp://0.0.0.0:7101" or "inproc://events").
func NewPublisher(addr string) (*Publisher, error) {
	sock, err := pub.NewSocket()
	if err != nil {
		return nil, fmt.Errorf("failed to open pub socket: %w", err)
	}
	if err := sock.Listen(addr); err != nil {
		sock.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return &Publisher{sock: sock, done: make(chan struct{})}, nil
}

// Publish sends one event to all connected subscribers.
func (p *Publisher) Publish(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	frame := append([]byte(ev.Topic+"|"), data...)
	if err := p.sock.Send(frame); err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}
	return nil
}

// Forward drains a bus subscription into the PUB socket until the
// subscription channel closes or the publisher is closed. Intended to run
// as a goroutine.
func (p *Publisher) Forward(subscription *Subscription) {
	for {
		select {
		case ev, ok := <-subscription.Channel():
			if !ok {
				return
			}
			// Send errors are per-subscriber transport failures, drop the event.
			_ = p.Publish(ev)
		case <-p.done:
			return
		}
	}
}

// Close shuts down the publisher socket.
func (p *Publisher) Close() error {
	close(p.done)
	return p.sock.Close()
}

// Subscriber receives namespace events from a remote Publisher.
type Subscriber struct {
	sock mangos.Socket
}

// NewSubscriber dials a publisher at addr and subscribes to the given
// topics. An empty topic list subscribes to everything.
func NewSubscriber(addr string, topics ...string) (*Subscriber, error) {
	sock, err := sub.NewSocket()
	if err != nil {
		return nil, fmt.Errorf("failed to open sub socket: %w", err)
	}
	if err := sock.Dial(addr); err != nil {
		sock.Close()
		return nil, fmt.Errorf("failed to dial %s: %w", addr, err)
	}

	if len(topics) == 0 {
		topics = []string{""}
	}
	for _, topic := range topics {
		if err := sock.SetOption(mangos.OptionSubscribe, []byte(topic)); err != nil {
			sock.Close()
			return nil, fmt.Errorf("failed to subscribe to %q: %w", topic, err)
		}
	}
	return &Subscriber{sock: sock}, nil
}

// SetRecvDeadline bounds how long Recv blocks.
func (s *Subscriber) SetRecvDeadline(d time.Duration) error {
	return s.sock.SetOption(mangos.OptionRecvDeadline, d)
}

// Recv blocks until the next event arrives.
func (s *Subscriber) Recv() (Event, error) {
	frame, err := s.sock.Recv()
	if err != nil {
		return Event{}, fmt.Errorf("failed to receive event: %w", err)
	}
	for i, b := range frame {
		if b == '|' {
			var ev Event
			if err := json.Unmarshal(frame[i+1:], &ev); err != nil {
				return Event{}, fmt.Errorf("failed to unmarshal event: %w", err)
			}
			return ev, nil
		}
	}
	return Event{}, fmt.Errorf("malformed event frame (no topic separator)")
}

// Close shuts down the subscriber socket.
func (s *Subscriber) Close() error {
	return s.sock.Close()
}
