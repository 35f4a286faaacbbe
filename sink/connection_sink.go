package sink

import (
	"context"
	"fmt"
	"roomcast/contract"
	"roomcast/domain/event"
	"roomcast/errors"
	"sync"
)

var _ contract.ClientHandle = (*ConnectionSink)(nil)

// ConnectionSink is the client handle of one websocket connection.
// The registry pushes into it, the connection writer drains Events.
// Once closed, every delivery fails and the registry prunes the member.
type ConnectionSink struct {
	events    chan event.Outbound
	done      chan struct{}
	closeOnce sync.Once
}

func NewConnectionSink(bufferSize int) *ConnectionSink {
	return &ConnectionSink{
		events: make(chan event.Outbound, bufferSize),
		done:   make(chan struct{}),
	}
}

// Deliver queues e for the connection writer, waiting on a full buffer until ctx expires.
// A timed-out sink is closed, so the registry dropping it also disconnects it.
func (s *ConnectionSink) Deliver(ctx context.Context, e event.Outbound) error {
	select {
	case <-s.done:
		return errors.ErrHandleClosed
	default:
	}
	select {
	case s.events <- e:
		return nil
	case <-s.done:
		return errors.ErrHandleClosed
	case <-ctx.Done():
		s.Close()
		return fmt.Errorf("%w: %w", errors.ErrDeliveryTimeout, ctx.Err())
	}
}

func (s *ConnectionSink) Events() <-chan event.Outbound {
	return s.events
}

func (s *ConnectionSink) Done() <-chan struct{} {
	return s.done
}

// Close marks the handle dead. The events channel is never closed so
// a concurrent Deliver cannot panic.
func (s *ConnectionSink) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}
