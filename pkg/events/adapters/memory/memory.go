// Package memory provides an in-process implementation of events.Bus backed
// by per-topic goroutines and buffered channels. It never crosses a process
// boundary; see pkg/messaging for the distributed equivalent.
package memory

import (
	"context"
	"sync"

	"github.com/chris-alexander-pop/system-design-library/pkg/events"
	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
)

// Config configures the in-process bus.
type Config struct {
	// BufferSize bounds the per-topic delivery queue.
	BufferSize int
}

type subscription struct {
	ch     chan events.Event
	done   chan struct{}
	cancel context.CancelFunc
}

// Bus is an in-memory implementation of events.Bus. Delivery to each
// subscriber is via its own goroutine, so one slow handler never blocks
// publish to other subscribers of the same topic.
type Bus struct {
	cfg Config

	mu   sync.RWMutex
	subs map[string][]*subscription
}

// New creates an in-process event bus.
func New(cfg Config) *Bus {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 64
	}
	return &Bus{cfg: cfg, subs: make(map[string][]*subscription)}
}

func (b *Bus) Publish(ctx context.Context, topic string, event events.Event) error {
	b.mu.RLock()
	subs := append([]*subscription(nil), b.subs[topic]...)
	b.mu.RUnlock()

	for _, s := range subs {
		select {
		case s.ch <- event:
		case <-s.done:
		default:
			logger.L().WarnContext(ctx, "dropping event: subscriber queue full", "topic", topic)
		}
	}
	return nil
}

func (b *Bus) Subscribe(ctx context.Context, topic string, handler events.Handler) error {
	subCtx, cancel := context.WithCancel(ctx)
	s := &subscription{
		ch:     make(chan events.Event, b.cfg.BufferSize),
		done:   make(chan struct{}),
		cancel: cancel,
	}

	b.mu.Lock()
	b.subs[topic] = append(b.subs[topic], s)
	b.mu.Unlock()

	go func() {
		defer close(s.done)
		for {
			select {
			case <-subCtx.Done():
				return
			case e := <-s.ch:
				if err := handler(subCtx, e); err != nil {
					logger.L().ErrorContext(subCtx, "event handler failed", "topic", topic, "error", err)
				}
			}
		}
	}()
	return nil
}

func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, subs := range b.subs {
		for _, s := range subs {
			s.cancel()
		}
	}
	b.subs = make(map[string][]*subscription)
	return nil
}

var _ events.Bus = (*Bus)(nil)
