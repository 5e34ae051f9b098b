// Package kafka is the messaging.Broker adapter for Apache Kafka (via
// IBM/sarama). It is the adapter the bus-oriented service base uses in
// production; pkg/messaging/adapters/memory exists for tests and local dev.
package kafka

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"github.com/chris-alexander-pop/system-design-library/pkg/errors"
	"github.com/chris-alexander-pop/system-design-library/pkg/messaging"
)

// Config configures the Kafka broker connection.
type Config struct {
	// Brokers is the list of seed broker addresses.
	Brokers []string

	// ClientID identifies this process to the broker (shows up in broker logs).
	ClientID string

	// Version is the Kafka protocol version to negotiate. Defaults to the
	// sarama default if zero-valued.
	Version sarama.KafkaVersion
}

// Broker implements messaging.Broker on top of a shared sarama client. One
// Broker per service instance is normal; Producer/Consumer calls create
// topic-scoped wrappers around it.
type Broker struct {
	cfg    Config
	client sarama.Client
	admin  sarama.ClusterAdmin
}

// New dials the Kafka cluster and returns a ready-to-use Broker.
func New(cfg Config) (*Broker, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.InvalidArgument("kafka: at least one broker address is required", nil)
	}

	saramaCfg := sarama.NewConfig()
	if cfg.ClientID != "" {
		saramaCfg.ClientID = cfg.ClientID
	}
	if cfg.Version != (sarama.KafkaVersion{}) {
		saramaCfg.Version = cfg.Version
	}
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.RequiredAcks = sarama.WaitForLocal
	saramaCfg.Consumer.Return.Errors = true
	saramaCfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	client, err := sarama.NewClient(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, messaging.ErrConnectionFailed(err)
	}

	admin, err := sarama.NewClusterAdminFromClient(client)
	if err != nil {
		_ = client.Close()
		return nil, messaging.ErrConnectionFailed(err)
	}

	return &Broker{cfg: cfg, client: client, admin: admin}, nil
}

// Producer creates a synchronous producer scoped to topic.
func (b *Broker) Producer(topic string) (messaging.Producer, error) {
	syncProducer, err := sarama.NewSyncProducerFromClient(b.client)
	if err != nil {
		return nil, messaging.ErrPublishFailed(err)
	}
	return &producer{broker: b, topic: topic, producer: syncProducer}, nil
}

// Consumer creates a consumer-group-based consumer scoped to topic. group
// is the Kafka consumer group id; instances sharing a group id split the
// topic's partitions between them.
func (b *Broker) Consumer(topic string, group string) (messaging.Consumer, error) {
	cg, err := sarama.NewConsumerGroupFromClient(group, b.client)
	if err != nil {
		return nil, messaging.ErrConsumeFailed(err)
	}
	return &consumer{broker: b, topic: topic, group: group, consumerGroup: cg}, nil
}

// Close shuts down the admin client, then the underlying sarama client.
func (b *Broker) Close() error {
	if b.admin != nil {
		_ = b.admin.Close()
	}
	return b.client.Close()
}

// Healthy reports whether the client can still reach a broker.
func (b *Broker) Healthy(ctx context.Context) bool {
	controller, err := b.client.Controller()
	return err == nil && controller != nil
}

// EnsureTopics creates every topic in names that doesn't already exist.
// TOPIC_ALREADY_EXISTS is treated as success, matching the broker's
// idempotent topic-creation contract.
func (b *Broker) EnsureTopics(ctx context.Context, names []string, partitions int32, replicationFactor int16) error {
	if partitions <= 0 {
		partitions = 1
	}
	if replicationFactor <= 0 {
		replicationFactor = 1
	}

	detail := &sarama.TopicDetail{
		NumPartitions:     partitions,
		ReplicationFactor: replicationFactor,
	}

	for _, name := range names {
		err := b.admin.CreateTopic(name, detail, false)
		if err == nil {
			continue
		}
		if topicErr, ok := err.(*sarama.TopicError); ok && topicErr.Err == sarama.ErrTopicAlreadyExists {
			continue
		}
		return messaging.ErrInvalidConfig("failed to create topic "+name, err)
	}
	return nil
}

// WaitForBroker polls ListTopics until it succeeds or timeout elapses,
// matching the topic-initialiser's 1s-backoff broker probe.
func WaitForBroker(ctx context.Context, cfg Config, timeout time.Duration) (*Broker, error) {
	deadline := time.Now().Add(timeout)
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		broker, err := New(cfg)
		if err == nil {
			if _, err := broker.admin.ListTopics(); err == nil {
				return broker, nil
			}
			_ = broker.Close()
		}
		lastErr = err

		if time.Now().After(deadline) {
			return nil, messaging.ErrConnectionFailed(lastErr)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(1 * time.Second):
		}
	}
}

var _ messaging.Broker = (*Broker)(nil)
