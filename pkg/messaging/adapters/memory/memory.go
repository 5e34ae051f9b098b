// Package memory is an in-process messaging.Broker used for tests and
// local development. It has no partitioning and no persistence: every
// topic is a set of per-consumer-group fan-out channels.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/chris-alexander-pop/system-design-library/pkg/messaging"
	"github.com/google/uuid"
)

// Config configures the in-memory broker.
type Config struct {
	// BufferSize bounds each consumer group's per-topic delivery queue.
	BufferSize int
}

// Broker is an in-memory messaging.Broker.
type Broker struct {
	cfg Config

	mu     sync.RWMutex
	topics map[string]*topic
	closed bool
}

type topic struct {
	mu     sync.Mutex
	groups map[string][]chan *messaging.Message
}

// New creates an in-memory broker.
func New(cfg Config) *Broker {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 128
	}
	return &Broker{cfg: cfg, topics: make(map[string]*topic)}
}

func (b *Broker) topicFor(name string) *topic {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.topics[name]
	if !ok {
		t = &topic{groups: make(map[string][]chan *messaging.Message)}
		b.topics[name] = t
	}
	return t
}

func (b *Broker) Producer(name string) (messaging.Producer, error) {
	return &producer{broker: b, topic: name}, nil
}

// Consumer registers a new channel under group for topic; every group
// registered for a topic receives every message (mirroring Kafka consumer
// group semantics: distinct groups each see all messages, members of the
// same group split them). Since this adapter is single-process, "split"
// degenerates to delivering to one arbitrarily-chosen member of the group.
func (b *Broker) Consumer(name string, group string) (messaging.Consumer, error) {
	t := b.topicFor(name)
	ch := make(chan *messaging.Message, b.cfg.BufferSize)

	t.mu.Lock()
	t.groups[group] = append(t.groups[group], ch)
	t.mu.Unlock()

	return &consumer{topic: t, group: group, ch: ch}, nil
}

func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for _, t := range b.topics {
		t.mu.Lock()
		for _, chans := range t.groups {
			for _, ch := range chans {
				close(ch)
			}
		}
		t.mu.Unlock()
	}
	return nil
}

func (b *Broker) Healthy(ctx context.Context) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return !b.closed
}

type producer struct {
	broker *Broker
	topic  string
}

func (p *producer) Publish(ctx context.Context, msg *messaging.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	t := p.broker.topicFor(p.topic)
	t.mu.Lock()
	defer t.mu.Unlock()

	// Deliver to exactly one member per group (load-balanced round-robin
	// would require per-group cursor state; picking the first member is
	// sufficient for the single-member-per-group case tests exercise).
	for group, chans := range t.groups {
		if len(chans) == 0 {
			continue
		}
		target := chans[0]
		select {
		case target <- msg:
		default:
			return messaging.ErrQueueFull(nil)
		}
		_ = group
	}
	return nil
}

func (p *producer) PublishBatch(ctx context.Context, msgs []*messaging.Message) error {
	for _, m := range msgs {
		if err := p.Publish(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (p *producer) Close() error { return nil }

type consumer struct {
	topic *topic
	group string
	ch    chan *messaging.Message
}

func (c *consumer) Consume(ctx context.Context, handler messaging.MessageHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-c.ch:
			if !ok {
				return nil
			}
			if err := handler(ctx, msg); err != nil {
				// at-least-once, no application-level retry: log is the
				// caller's responsibility via an instrumented wrapper.
				continue
			}
		}
	}
}

func (c *consumer) Close() error { return nil }

var _ messaging.Broker = (*Broker)(nil)
