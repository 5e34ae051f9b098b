// Command nf-stub-gmlc runs a stub GMLC network function over HTTP, for
// local end-to-end testing without a real 5G core.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/chris-alexander-pop/system-design-library/internal/nfstubs/gmlc"
	"github.com/chris-alexander-pop/system-design-library/pkg/config"
	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type envConfig struct {
	Logger      logger.Config
	ServicePort int `env:"GMLC_SERVICE_PORT" env-default:"8001" validate:"required"`
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

	stub := gmlc.New()
	go stub.Run(ctx)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	stub.Register(e)

	go func() {
		if err := e.Start(":" + strconv.Itoa(cfg.ServicePort)); err != nil {
			logger.L().ErrorContext(ctx, "gmlc stub server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	_ = e.Close()
}
