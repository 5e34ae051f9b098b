// Command api-gateway runs the HTTP subscription ingress that
// republishes NnwdafEventsSubscription requests onto the bus.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chris-alexander-pop/system-design-library/internal/anlf/throughput"
	"github.com/chris-alexander-pop/system-design-library/internal/catalog"
	"github.com/chris-alexander-pop/system-design-library/internal/gateway"
	"github.com/chris-alexander-pop/system-design-library/pkg/config"
	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
	"github.com/chris-alexander-pop/system-design-library/pkg/messaging"
	"github.com/chris-alexander-pop/system-design-library/pkg/messaging/adapters/kafka"
)

type envConfig struct {
	Logger     logger.Config
	Kafka      kafkaEnv
	Resilience messaging.ResilientBrokerConfig
	Gateway    gateway.Config
}

type kafkaEnv struct {
	Brokers  []string `env:"KAFKA_BOOTSTRAP_SERVER" env-separator:"," validate:"required"`
	ClientID string   `env:"KAFKA_CLIENT_ID" env-default:"api-gateway"`
}

func main() {
	var cfg envConfig
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kafkaBroker, err := kafka.New(kafka.Config{Brokers: cfg.Kafka.Brokers, ClientID: cfg.Kafka.ClientID})
	if err != nil {
		logger.L().ErrorContext(ctx, "failed to connect to kafka", "error", err)
		os.Exit(1)
	}
	defer kafkaBroker.Close()
	broker := messaging.NewResilientBroker(kafkaBroker, cfg.Resilience)

	gw := gateway.New(cfg.Gateway)

	producer, err := broker.Producer(catalog.NwdafEventSubscriptionTopic(catalog.EventUELocThroughput))
	if err != nil {
		logger.L().ErrorContext(ctx, "failed to create subscription producer", "error", err)
		os.Exit(1)
	}
	gw.RegisterEvent(catalog.EventUELocThroughput, messaging.NewWriteHandler[throughput.AnalyticsSubscriptionRequest](
		catalog.NwdafEventSubscriptionTopic(catalog.EventUELocThroughput), messaging.ModeCRUD, producer))

	go func() {
		if err := gw.Start(); err != nil {
			logger.L().ErrorContext(ctx, "gateway server stopped", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := gw.Shutdown(shutdownCtx); err != nil {
		logger.L().ErrorContext(shutdownCtx, "gateway shutdown error", "error", err)
	}
}
