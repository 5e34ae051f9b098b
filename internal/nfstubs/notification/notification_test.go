package notification

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestReceiveUpdatesGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink := New(reg)
	e := echo.New()
	sink.Register(e, reg)

	body := `{"event_notifications":[{"predicted_throughput_infos":[{"supi":"imsi-001","throughput":"12.50 Mbps"}]}]}`
	req := httptest.NewRequest(http.MethodPost, "/analytics-notification", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	metric := &dto.Metric{}
	require.NoError(t, sink.gauge.WithLabelValues("imsi-001").Write(metric))
	require.InDelta(t, 12.50, metric.GetGauge().GetValue(), 0.001)
}
