// Package topicinit bootstraps the bus: it waits for the broker to
// become reachable, then idempotently ensures every catalog topic
// exists.
package topicinit

import (
	"context"
	"time"

	"github.com/chris-alexander-pop/system-design-library/internal/catalog"
	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
	"github.com/chris-alexander-pop/system-design-library/pkg/messaging/adapters/kafka"
)

// Config configures topic bootstrap.
type Config struct {
	Brokers           []string      `env:"KAFKA_BOOTSTRAP_SERVER" validate:"required"`
	Partitions        int32         `env:"TOPIC_PARTITIONS" env-default:"1"`
	ReplicationFactor int16         `env:"TOPIC_REPLICATION_FACTOR" env-default:"1"`
	WaitTimeout       time.Duration `env:"BROKER_WAIT_TIMEOUT" env-default:"20s"`
}

// Run waits for the broker (1s-backoff list-topics probe, bounded by
// cfg.WaitTimeout, itself never below 20s per the external-interfaces
// contract) then ensures every NF×event topic plus the fixed
// control/delivery plane topics exist. TOPIC_ALREADY_EXISTS is success;
// running Run twice against the same broker is a no-op the second time.
func Run(ctx context.Context, cfg Config) error {
	if cfg.WaitTimeout < 20*time.Second {
		cfg.WaitTimeout = 20 * time.Second
	}

	broker, err := kafka.WaitForBroker(ctx, kafka.Config{Brokers: cfg.Brokers, ClientID: "topicinit"}, cfg.WaitTimeout)
	if err != nil {
		logger.L().ErrorContext(ctx, "broker did not become reachable within timeout", "timeout", cfg.WaitTimeout, "error", err)
		return err
	}
	defer broker.Close()

	topics := catalog.AllTopics()
	if err := broker.EnsureTopics(ctx, topics, cfg.Partitions, cfg.ReplicationFactor); err != nil {
		logger.L().ErrorContext(ctx, "failed to ensure topics", "count", len(topics), "error", err)
		return err
	}

	logger.L().InfoContext(ctx, "topic bootstrap complete", "count", len(topics))
	return nil
}
