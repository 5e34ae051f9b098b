// Command mtlf-throughput runs the model-training-and-logistics function
// stub: it answers ML model provision requests with a configured model
// URL, optionally also subscribing ADRF to archive the training data.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chris-alexander-pop/system-design-library/internal/mtlf/throughput"
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
	ClientID string   `env:"KAFKA_CLIENT_ID" env-default:"mtlf-throughput"`
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

	svc, err := throughput.New(cfg.Service, broker)
	if err != nil {
		logger.L().ErrorContext(ctx, "failed to build mtlf throughput service", "error", err)
		os.Exit(1)
	}

	svc.Run(ctx)
}
