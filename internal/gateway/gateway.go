// Package gateway is the HTTP subscription ingress: it accepts NF
// subscription requests over HTTP and republishes them onto the bus's
// Control.NwdafEventSubscription.<event> topics.
package gateway

import (
	"context"
	"net/http"
	"strconv"

	"github.com/chris-alexander-pop/system-design-library/internal/anlf/throughput"
	"github.com/chris-alexander-pop/system-design-library/internal/catalog"
	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
	"github.com/chris-alexander-pop/system-design-library/pkg/messaging"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

// Config configures the gateway HTTP server.
type Config struct {
	ServiceName string `env:"GATEWAY_SERVICE_NAME" env-default:"api-gateway" validate:"required"`
	Port        int    `env:"GATEWAY_SERVICE_PORT" env-default:"8080" validate:"required"`
}

// subscriptionRequest is the HTTP body for a new analytics subscription
// (NnwdafEventsSubscription in the 3GPP naming the original uses).
type subscriptionRequest struct {
	Event           string   `json:"event" validate:"required"`
	SUPIs           []string `json:"supis" validate:"required"`
	NotificationURI string   `json:"notification_uri"`
}

// Gateway republishes subscription requests accepted over HTTP onto the
// Control.NwdafEventSubscription plane.
type Gateway struct {
	echo *echo.Echo
	cfg  Config

	subOut map[catalog.EventType]*messaging.WriteHandler[throughput.AnalyticsSubscriptionRequest]
}

// New builds a Gateway. Supported events must be registered via
// RegisterEvent before Start; an event arriving over HTTP that was never
// registered is rejected with 400.
func New(cfg Config) *Gateway {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(otelecho.Middleware(cfg.ServiceName))

	gw := &Gateway{
		echo:   e,
		cfg:    cfg,
		subOut: make(map[catalog.EventType]*messaging.WriteHandler[throughput.AnalyticsSubscriptionRequest]),
	}

	e.POST("/nnwdaf-eventsubscription/v1/subscriptions", gw.handleCreate)
	e.DELETE("/nnwdaf-eventsubscription/v1/subscriptions/:subID", gw.handleDelete)

	return gw
}

// RegisterEvent wires a write handler for event, created by the caller
// from its own broker (one topic per supported analytics event).
func (g *Gateway) RegisterEvent(event catalog.EventType, wh *messaging.WriteHandler[throughput.AnalyticsSubscriptionRequest]) {
	g.subOut[event] = wh
}

func (g *Gateway) handleCreate(c echo.Context) error {
	var req subscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed subscription request")
	}

	wh, ok := g.subOut[catalog.EventType(req.Event)]
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported event: "+req.Event)
	}

	subID := uuid.New().String()
	ctx := c.Request().Context()
	if err := wh.Enqueue(ctx, subID, throughput.AnalyticsSubscriptionRequest{
		Event:           req.Event,
		SUPIs:           req.SUPIs,
		NotificationURI: req.NotificationURI,
	}, messaging.OpCreate); err != nil {
		logger.L().ErrorContext(ctx, "failed to republish subscription onto bus", "sub_id", subID, "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "failed to accept subscription")
	}

	c.Response().Header().Set(echo.HeaderLocation, "/nnwdaf-eventsubscription/v1/subscriptions/"+subID)
	return c.JSON(http.StatusCreated, map[string]string{"sub_id": subID})
}

func (g *Gateway) handleDelete(c echo.Context) error {
	subID := c.Param("subID")
	event := c.QueryParam("event")

	wh, ok := g.subOut[catalog.EventType(event)]
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported event: "+event)
	}

	ctx := c.Request().Context()
	if err := wh.Enqueue(ctx, subID, throughput.AnalyticsSubscriptionRequest{}, messaging.OpDelete); err != nil {
		logger.L().ErrorContext(ctx, "failed to republish deletion onto bus", "sub_id", subID, "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "failed to accept deletion")
	}

	return c.NoContent(http.StatusNoContent)
}

// Start blocks serving HTTP on cfg.Port.
func (g *Gateway) Start() error {
	return g.echo.Start(":" + strconv.Itoa(g.cfg.Port))
}

// Shutdown gracefully stops the HTTP server.
func (g *Gateway) Shutdown(ctx context.Context) error {
	return g.echo.Shutdown(ctx)
}
