// Command adrf runs the analytics data repository function: it records
// every active dataset's notifications into a document store and serves
// windowed retrieval requests from it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chris-alexander-pop/system-design-library/internal/adrf"
	"github.com/chris-alexander-pop/system-design-library/pkg/config"
	"github.com/chris-alexander-pop/system-design-library/pkg/database"
	"github.com/chris-alexander-pop/system-design-library/pkg/database/document"
	"github.com/chris-alexander-pop/system-design-library/pkg/database/document/adapters/mongodb"
	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
	"github.com/chris-alexander-pop/system-design-library/pkg/messaging"
	"github.com/chris-alexander-pop/system-design-library/pkg/messaging/adapters/kafka"
)

type envConfig struct {
	Logger     logger.Config
	Kafka      kafkaEnv
	Resilience messaging.ResilientBrokerConfig
	Mongo      mongoEnv
	Service    adrf.Config
}

type kafkaEnv struct {
	Brokers  []string `env:"KAFKA_BOOTSTRAP_SERVER" env-separator:"," validate:"required"`
	ClientID string   `env:"KAFKA_CLIENT_ID" env-default:"adrf"`
}

type mongoEnv struct {
	Host     string `env:"ADRF_MONGO_HOST" env-default:"localhost" validate:"required"`
	Port     int    `env:"ADRF_MONGO_PORT" env-default:"27017" validate:"required"`
	Database string `env:"ADRF_MONGO_DATABASE" env-default:"adrf" validate:"required"`
	User     string `env:"ADRF_MONGO_USER"`
	Password string `env:"ADRF_MONGO_PASSWORD"`
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

	store, err := mongodb.New(document.Config{
		Driver:   database.DriverMongoDB,
		Host:     cfg.Mongo.Host,
		Port:     cfg.Mongo.Port,
		Database: cfg.Mongo.Database,
		User:     cfg.Mongo.User,
		Password: cfg.Mongo.Password,
	})
	if err != nil {
		logger.L().ErrorContext(ctx, "failed to connect to mongodb", "error", err)
		os.Exit(1)
	}

	svc, err := adrf.New(cfg.Service, broker, store)
	if err != nil {
		logger.L().ErrorContext(ctx, "failed to build adrf service", "error", err)
		os.Exit(1)
	}

	svc.Run(ctx)
}
