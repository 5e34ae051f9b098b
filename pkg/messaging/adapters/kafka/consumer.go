package kafka

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
	"github.com/chris-alexander-pop/system-design-library/pkg/messaging"
)

// consumer is a Kafka consumer-group-based messaging.Consumer. The consumer
// group id is the service name, so multiple instances of the same service
// split partitions while distinct services each see every message.
type consumer struct {
	broker        *Broker
	topic         string
	group         string
	consumerGroup sarama.ConsumerGroup
}

func (c *consumer) Consume(ctx context.Context, handler messaging.MessageHandler) error {
	h := &groupHandler{handler: handler}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err := c.consumerGroup.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.L().ErrorContext(ctx, "kafka consume loop error", "topic", c.topic, "group", c.group, "error", err)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *consumer) Close() error {
	return c.consumerGroup.Close()
}

// groupHandler adapts sarama's ConsumerGroupHandler callback shape to a
// single messaging.MessageHandler.
type groupHandler struct {
	handler messaging.MessageHandler
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := session.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			m := &messaging.Message{
				Topic:     msg.Topic,
				Key:       msg.Key,
				Payload:   msg.Value,
				Timestamp: msg.Timestamp,
				Metadata: messaging.MessageMetadata{
					Partition: msg.Partition,
					Offset:    msg.Offset,
				},
			}
			for _, hdr := range msg.Headers {
				if string(hdr.Key) == "message-id" {
					m.ID = string(hdr.Value)
				}
			}

			// Malformed payloads are the handler's concern to log and
			// skip; either way the offset advances (at-least-once, no
			// application-level retry).
			if err := h.handler(ctx, m); err != nil {
				logger.L().WarnContext(ctx, "message handler returned error; advancing offset anyway",
					"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "error", err)
			}
			session.MarkMessage(msg, "")
		}
	}
}

var _ messaging.Consumer = (*consumer)(nil)
