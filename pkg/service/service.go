// Package service provides the lifecycle base every bus-oriented
// microservice embeds: a named set of background tasks (consumers,
// producers, domain loops) started together and stopped cooperatively
// within a bounded grace period.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/chris-alexander-pop/system-design-library/pkg/concurrency"
	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
	"github.com/chris-alexander-pop/system-design-library/pkg/messaging"
)

// Task is a background unit of work. It must observe ctx cancellation at
// every suspension point and return within the service's grace period.
type Task func(ctx context.Context)

// Closer is anything with resources to release at shutdown (a
// *messaging.WriteHandler, *messaging.ReadHandler, or a raw
// Producer/Consumer).
type Closer interface {
	Close() error
}

// Config controls the base's shutdown behavior.
type Config struct {
	// Name identifies the service for logging (and is conventionally also
	// the Kafka consumer group id).
	Name string

	// GracePeriod bounds how long Stop waits for tasks to exit after
	// cancellation. Default 1s per the concurrency model's grace window.
	GracePeriod time.Duration
}

// Base is the lifecycle object every analytics microservice embeds.
// Mutation of its registries only happens before Start (single-owner,
// single-threaded setup), so no lock guards them.
type Base struct {
	cfg Config

	tasks   []namedTask
	closers []Closer

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	stopped chan struct{}
}

type namedTask struct {
	name string
	fn   Task
}

// New creates a service Base. Broker is accepted for symmetry with the
// teacher's constructor style and so callers can derive read/write
// handlers from it, but Base itself only tracks tasks and closers.
func New(cfg Config, _ messaging.Broker) *Base {
	if cfg.GracePeriod <= 0 {
		cfg.GracePeriod = time.Second
	}
	return &Base{cfg: cfg, stopped: make(chan struct{})}
}

// AddTask registers a background task to be launched by Start. Call before
// Start; registration is not safe to call concurrently with Start/Stop.
func (b *Base) AddTask(name string, fn Task) {
	b.tasks = append(b.tasks, namedTask{name: name, fn: fn})
}

// AddCloser registers a resource (handler, producer, consumer) to be
// closed when Stop drains the service. Closers run best-effort: a failure
// is logged, not propagated.
func (b *Base) AddCloser(c Closer) {
	b.closers = append(b.closers, c)
}

// AddReadHandler launches handler.Run as a named background task — the
// read-handler-as-task composition every analytics service uses for its
// inbound subscription/delivery topics.
func AddReadHandler[T any](b *Base, name string, handler *messaging.ReadHandler[T]) {
	b.AddCloser(handler)
	b.AddTask(name, func(ctx context.Context) {
		if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
			logger.L().ErrorContext(ctx, "read handler exited with error", "task", name, "error", err)
		}
	})
}

// Start launches every registered task under a single cancellable
// context. It returns immediately; tasks run until Stop cancels them.
func (b *Base) Start(ctx context.Context) context.Context {
	runCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel

	for _, t := range b.tasks {
		task := t
		b.wg.Add(1)
		concurrency.SafeGo(runCtx, func() {
			defer b.wg.Done()
			logger.L().InfoContext(runCtx, "task starting", "service", b.cfg.Name, "task", task.name)
			task.fn(runCtx)
			logger.L().InfoContext(runCtx, "task stopped", "service", b.cfg.Name, "task", task.name)
		})
	}

	return runCtx
}

// Stop cancels every task's context and waits up to GracePeriod for them
// to exit, then best-effort closes every registered closer. Outbound
// producer queues and consumer offsets are drained/committed on a
// best-effort basis only — this mirrors the bus's at-least-once contract.
func (b *Base) Stop() {
	if b.cancel != nil {
		b.cancel()
	}

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(b.cfg.GracePeriod):
		logger.L().Warn("service stop: grace period elapsed with tasks still running", "service", b.cfg.Name)
	}

	for _, c := range b.closers {
		if err := c.Close(); err != nil {
			logger.L().Error("error closing resource during shutdown", "service", b.cfg.Name, "error", err)
		}
	}

	close(b.stopped)
}

// Run is Start followed by blocking until ctx is done, then Stop. This is
// the convenience entrypoint cmd/* binaries call.
func (b *Base) Run(ctx context.Context) {
	runCtx := b.Start(ctx)
	<-runCtx.Done()
	b.Stop()
}
