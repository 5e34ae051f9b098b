// Command kafka-topics-init waits for the Kafka cluster to become
// reachable and ensures every control/delivery-plane topic exists
// before the rest of the system starts.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chris-alexander-pop/system-design-library/internal/topicinit"
	"github.com/chris-alexander-pop/system-design-library/pkg/config"
	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
)

type envConfig struct {
	Logger logger.Config
	Init   topicinit.Config
}

func main() {
	var cfg envConfig
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logger)

	ctx := context.Background()
	if err := topicinit.Run(ctx, cfg.Init); err != nil {
		logger.L().ErrorContext(ctx, "topic bootstrap failed", "error", err)
		os.Exit(1)
	}
}
