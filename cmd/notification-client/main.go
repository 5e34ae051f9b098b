// Command notification-client runs a stub analytics notification sink
// with a Prometheus /metrics endpoint exposing predicted throughput per
// SUPI, for local observation of delivered notifications.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/chris-alexander-pop/system-design-library/internal/nfstubs/notification"
	"github.com/chris-alexander-pop/system-design-library/pkg/config"
	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

type envConfig struct {
	Logger      logger.Config
	ServicePort int `env:"NOTIF_CLIENT_SERVICE_PORT" env-default:"8181" validate:"required"`
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

	registry := prometheus.NewRegistry()
	sink := notification.New(registry)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	sink.Register(e, registry)

	go func() {
		if err := e.Start(":" + strconv.Itoa(cfg.ServicePort)); err != nil {
			logger.L().ErrorContext(ctx, "notification client server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	_ = e.Close()
}
