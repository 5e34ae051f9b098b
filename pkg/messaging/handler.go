package messaging

import (
	"context"
	"encoding/json"

	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
)

// WriteHandler binds a messaging.Producer to one topic, one payload type,
// and one framing Mode. It is the "write handler" of the bus I/O layer:
// callers never touch raw *Message values.
type WriteHandler[T any] struct {
	topic    string
	mode     Mode
	producer Producer
}

// NewWriteHandler wraps producer (already scoped to topic by the broker)
// for typed enqueues.
func NewWriteHandler[T any](topic string, mode Mode, producer Producer) *WriteHandler[T] {
	return &WriteHandler[T]{topic: topic, mode: mode, producer: producer}
}

// Enqueue serializes payload per the handler's mode and publishes it keyed
// by key. key doubles as the Kafka partition key and, in CRUD mode, the
// envelope's resource-id / correlation-id.
func (w *WriteHandler[T]) Enqueue(ctx context.Context, key string, payload T, op OpType) error {
	body, err := w.encode(key, payload, op)
	if err != nil {
		return ErrSerializationFailed(err)
	}

	return w.producer.Publish(ctx, &Message{
		Topic:   w.topic,
		Key:     []byte(key),
		Payload: body,
	})
}

func (w *WriteHandler[T]) encode(key string, payload T, op OpType) ([]byte, error) {
	switch w.mode {
	case ModeCRUD:
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		return json.Marshal(Envelope{OpType: op, ResourceID: key, ResourceData: data})
	case ModeReceive:
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		return json.Marshal(Envelope{OpType: OpReceive, ResourceID: key, ResourceData: data})
	default: // ModePayload
		return json.Marshal(payload)
	}
}

func (w *WriteHandler[T]) Close() error {
	return w.producer.Close()
}

// CRUDCallbacks registers one handler per operation type for a ModeCRUD
// ReadHandler. A nil entry means that operation is ignored.
type CRUDCallbacks[T any] struct {
	OnCreate func(ctx context.Context, resourceID string, payload T)
	OnRead   func(ctx context.Context, resourceID string, payload T)
	OnUpdate func(ctx context.Context, resourceID string, payload T)
	OnDelete func(ctx context.Context, resourceID string, payload T)
}

// ReadHandler binds a messaging.Consumer to one topic, one payload type,
// and one framing Mode, dispatching to typed callbacks.
type ReadHandler[T any] struct {
	topic    string
	mode     Mode
	consumer Consumer

	crud      CRUDCallbacks[T]
	onReceive func(ctx context.Context, payload T)
}

// NewReadHandler wraps consumer (already scoped to topic+group) for typed
// dispatch. For ModeCRUD topics, call OnCRUD; for ModeReceive/ModePayload
// topics, call OnReceive. Calling the wrong registration method is a
// programmer error caught by Run returning an error.
func NewReadHandler[T any](topic string, mode Mode, consumer Consumer) *ReadHandler[T] {
	return &ReadHandler[T]{topic: topic, mode: mode, consumer: consumer}
}

func (r *ReadHandler[T]) OnCRUD(cb CRUDCallbacks[T]) *ReadHandler[T] {
	r.crud = cb
	return r
}

func (r *ReadHandler[T]) OnReceive(cb func(ctx context.Context, payload T)) *ReadHandler[T] {
	r.onReceive = cb
	return r
}

// Run blocks consuming until ctx is canceled. Malformed JSON or a schema
// mismatch is logged at WARN and dropped; the consumer offset still
// advances (enforced by the adapter, not here).
func (r *ReadHandler[T]) Run(ctx context.Context) error {
	switch {
	case r.mode == ModeCRUD && r.crud.OnCreate == nil && r.crud.OnRead == nil && r.crud.OnUpdate == nil && r.crud.OnDelete == nil:
		return ErrInvalidConfig("read handler for "+r.topic+": CRUD mode needs OnCRUD callbacks", nil)
	case r.mode != ModeCRUD && r.onReceive == nil:
		return ErrInvalidConfig("read handler for "+r.topic+": OnReceive callback not registered", nil)
	}
	return r.consumer.Consume(ctx, func(ctx context.Context, msg *Message) error {
		switch r.mode {
		case ModeCRUD, ModeReceive:
			var env Envelope
			if err := json.Unmarshal(msg.Payload, &env); err != nil {
				logger.L().WarnContext(ctx, "dropping malformed envelope", "topic", r.topic, "error", err)
				return nil
			}
			var payload T
			if len(env.ResourceData) > 0 {
				if err := json.Unmarshal(env.ResourceData, &payload); err != nil {
					logger.L().WarnContext(ctx, "dropping envelope with schema mismatch", "topic", r.topic, "error", err)
					return nil
				}
			}
			r.dispatch(ctx, env, payload)
		default: // ModePayload
			var payload T
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				logger.L().WarnContext(ctx, "dropping malformed payload", "topic", r.topic, "error", err)
				return nil
			}
			if r.onReceive != nil {
				r.onReceive(ctx, payload)
			}
		}
		return nil
	})
}

func (r *ReadHandler[T]) dispatch(ctx context.Context, env Envelope, payload T) {
	if r.mode == ModeReceive {
		if r.onReceive != nil {
			r.onReceive(ctx, payload)
		}
		return
	}

	switch env.OpType {
	case OpCreate:
		if r.crud.OnCreate != nil {
			r.crud.OnCreate(ctx, env.ResourceID, payload)
		}
	case OpRead:
		if r.crud.OnRead != nil {
			r.crud.OnRead(ctx, env.ResourceID, payload)
		}
	case OpUpdate:
		if r.crud.OnUpdate != nil {
			r.crud.OnUpdate(ctx, env.ResourceID, payload)
		}
	case OpDelete:
		if r.crud.OnDelete != nil {
			r.crud.OnDelete(ctx, env.ResourceID, payload)
		}
	case OpReceive:
		if r.onReceive != nil {
			r.onReceive(ctx, payload)
		}
	}
}

func (r *ReadHandler[T]) Close() error {
	return r.consumer.Close()
}
