// Command csv-player replays a recorded drive-test CSV file by POSTing each
// row to the configured /data endpoints (of the two NF stubs, only the RAN
// stub serves /data), triggered over HTTP via GET /start.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/chris-alexander-pop/system-design-library/internal/nfstubs/csvplayer"
	"github.com/chris-alexander-pop/system-design-library/pkg/config"
	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type envConfig struct {
	Logger          logger.Config
	ServicePort     int    `env:"CSV_FP_SERVICE_PORT" env-default:"8003" validate:"required"`
	FilePath        string `env:"CSV_FP_FILE_PATH" env-default:"csv/Lumos5G-v1.0.csv" validate:"required"`
	IntervalSeconds int    `env:"CSV_FP_INTERVAL_SECONDS" env-default:"5"`
	GMLCServiceName string `env:"GMLC_SERVICE_NAME" validate:"required"`
	GMLCServicePort int    `env:"GMLC_SERVICE_PORT" env-default:"8001"`
	RANServiceName  string `env:"RAN_SERVICE_NAME" validate:"required"`
	RANServicePort  int    `env:"RAN_SERVICE_PORT" env-default:"8002"`
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

	endpoints := []string{
		fmt.Sprintf("http://%s:%d/data", cfg.GMLCServiceName, cfg.GMLCServicePort),
		fmt.Sprintf("http://%s:%d/data", cfg.RANServiceName, cfg.RANServicePort),
	}

	server := csvplayer.NewServer(csvplayer.Config{
		FilePath: cfg.FilePath,
		Interval: time.Duration(cfg.IntervalSeconds) * time.Second,
	}, endpoints)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	server.Register(e)

	go func() {
		if err := e.Start(":" + strconv.Itoa(cfg.ServicePort)); err != nil {
			logger.L().ErrorContext(ctx, "csv player server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	_ = e.Close()
}
