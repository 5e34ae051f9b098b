// Command anlf-throughput runs the predicted-UE-throughput analytics
// function: it tracks one GMLC/RAN notification pair per active
// subscription, runs the configured ML model against them, and emits a
// predicted-throughput analytics notification each time a subscription
// has received both its GMLC and its RAN notification.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chris-alexander-pop/system-design-library/internal/anlf/throughput"
	"github.com/chris-alexander-pop/system-design-library/pkg/ai/ml/inference"
	"github.com/chris-alexander-pop/system-design-library/pkg/config"
	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
	"github.com/chris-alexander-pop/system-design-library/pkg/messaging"
	"github.com/chris-alexander-pop/system-design-library/pkg/messaging/adapters/kafka"
)

type envConfig struct {
	Logger     logger.Config
	Kafka      kafkaEnv
	Resilience messaging.ResilientBrokerConfig
	Service    throughput.Config
}

type kafkaEnv struct {
	Brokers  []string `env:"KAFKA_BOOTSTRAP_SERVER" env-separator:"," validate:"required"`
	ClientID string   `env:"KAFKA_CLIENT_ID" env-default:"anlf-throughput"`
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

	infer := inference.NewMemoryServer()

	svc, err := throughput.New(cfg.Service, broker, infer)
	if err != nil {
		logger.L().ErrorContext(ctx, "failed to build anlf throughput service", "error", err)
		os.Exit(1)
	}

	svc.Run(ctx)
}
