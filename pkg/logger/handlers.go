package logger

import (
	"context"
	"log/slog"
	"math/rand"
	"regexp"
	"sync"
)

// AsyncHandler buffers log records and writes them from a single background
// goroutine so callers never block on the underlying handler (e.g. slow
// stdout, a remote sink). Records are dropped once the buffer is full and
// dropBlocking is false, rather than applying backpressure to the caller.
type AsyncHandler struct {
	next         slog.Handler
	ch           chan slog.Record
	dropBlocking bool
	once         sync.Once
}

// NewAsyncHandler wraps next with an async buffer of the given size.
// If dropBlocking is true, Handle blocks when the buffer is full instead
// of dropping the record.
func NewAsyncHandler(next slog.Handler, bufferSize int, dropBlocking bool) *AsyncHandler {
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	h := &AsyncHandler{
		next:         next,
		ch:           make(chan slog.Record, bufferSize),
		dropBlocking: dropBlocking,
	}
	h.start()
	return h
}

func (h *AsyncHandler) start() {
	h.once.Do(func() {
		go func() {
			for r := range h.ch {
				_ = h.next.Handle(context.Background(), r)
			}
		}()
	})
}

func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *AsyncHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.dropBlocking {
		h.ch <- r
		return nil
	}
	select {
	case h.ch <- r:
	default:
		// buffer full: drop rather than block the caller.
	}
	return nil
}

func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{next: h.next.WithAttrs(attrs), ch: h.ch, dropBlocking: h.dropBlocking}
}

func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{next: h.next.WithGroup(name), ch: h.ch, dropBlocking: h.dropBlocking}
}

// redactedKeys are attribute keys whose string values are replaced with a
// fixed placeholder before reaching the sink.
var redactedKeys = map[string]struct{}{
	"password": {}, "secret": {}, "token": {}, "authorization": {},
	"notification_uri": {}, "m_l_model_url": {},
}

var redactPattern = regexp.MustCompile(`(?i)(password|secret|token)=\S+`)

// RedactHandler scrubs attributes that commonly carry sensitive data
// (credentials, callback URIs) before they are logged.
type RedactHandler struct {
	next slog.Handler
}

func NewRedactHandler(next slog.Handler) *RedactHandler {
	return &RedactHandler{next: next}
}

func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	nr := slog.NewRecord(r.Time, r.Level, redactPattern.ReplaceAllString(r.Message, "$1=[REDACTED]"), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		nr.AddAttrs(h.redact(a))
		return true
	})
	return h.next.Handle(ctx, nr)
}

func (h *RedactHandler) redact(a slog.Attr) slog.Attr {
	if _, ok := redactedKeys[a.Key]; ok {
		return slog.String(a.Key, "[REDACTED]")
	}
	return a
}

func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RedactHandler{next: h.next.WithAttrs(attrs)}
}

func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{next: h.next.WithGroup(name)}
}

// SamplingHandler drops a fraction of records to bound logging volume at
// high throughput. ERROR and WARN records are never sampled away.
type SamplingHandler struct {
	next slog.Handler
	rate float64
}

func NewSamplingHandler(next slog.Handler, rate float64) *SamplingHandler {
	return &SamplingHandler{next: next, rate: rate}
}

func (h *SamplingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *SamplingHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn || rand.Float64() < h.rate {
		return h.next.Handle(ctx, r)
	}
	return nil
}

func (h *SamplingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SamplingHandler{next: h.next.WithAttrs(attrs), rate: h.rate}
}

func (h *SamplingHandler) WithGroup(name string) slog.Handler {
	return &SamplingHandler{next: h.next.WithGroup(name), rate: h.rate}
}
