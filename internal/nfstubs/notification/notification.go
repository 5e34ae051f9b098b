// Package notification is a stub analytics notification sink: it accepts
// the delivery plane's NnwdafEventsSubscriptionNotification over HTTP and
// exposes the decoded predicted throughput as a Prometheus gauge, for
// local end-to-end testing and observation.
package notification

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ThroughputInfo is one SUPI's predicted throughput entry.
type ThroughputInfo struct {
	SUPI       string `json:"supi"`
	Throughput string `json:"throughput"`
}

// EventNotification is one event's worth of predictions within a
// delivered analytics notification.
type EventNotification struct {
	PredictedThroughputInfos []ThroughputInfo `json:"predicted_throughput_infos"`
}

// AnalyticsNotification is the body posted to /analytics-notification.
type AnalyticsNotification struct {
	EventNotifications []EventNotification `json:"event_notifications"`
}

// Sink is the notification-client stub.
type Sink struct {
	gauge *prometheus.GaugeVec
}

// New creates a Sink and registers its gauge against reg.
func New(reg prometheus.Registerer) *Sink {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "predicted_throughput",
		Help: "Predicted throughput in Mbps",
	}, []string{"supi"})
	reg.MustRegister(gauge)

	return &Sink{gauge: gauge}
}

// Register mounts the stub's routes onto e, including the Prometheus
// /metrics endpoint served from the same registerer New was given.
func (s *Sink) Register(e *echo.Echo, gatherer prometheus.Gatherer) {
	e.POST("/analytics-notification", s.receive)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

func (s *Sink) receive(c echo.Context) error {
	var notif AnalyticsNotification
	if err := c.Bind(&notif); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed notification")
	}

	ctx := c.Request().Context()
	for _, event := range notif.EventNotifications {
		for _, info := range event.PredictedThroughputInfos {
			value, err := parseThroughput(info.Throughput)
			if err != nil {
				logger.L().WarnContext(ctx, "failed to parse throughput value", "supi", info.SUPI, "raw", info.Throughput, "error", err)
				continue
			}
			s.gauge.WithLabelValues(info.SUPI).Set(value)
			logger.L().InfoContext(ctx, "updated predicted throughput", "supi", info.SUPI, "mbps", value)
		}
	}

	return c.NoContent(http.StatusNoContent)
}

func parseThroughput(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimSuffix(trimmed, "Mbps")
	trimmed = strings.TrimSuffix(trimmed, "Kbps")
	return strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
}
