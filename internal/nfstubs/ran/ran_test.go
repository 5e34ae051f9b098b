package ran

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestSubscribeNotifiesCallback(t *testing.T) {
	var received atomic.Int32
	callback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var notif Notification
		require.NoError(t, json.NewDecoder(r.Body).Decode(&notif))
		require.Len(t, notif.RsrpInfos, 1)
		received.Add(1)
	}))
	defer callback.Close()

	stub := New()
	e := echo.New()
	stub.Register(e)

	body := `{"ue_ids":["imsi-001"],"periodicity":1,"correlation_id":"C1","callback_url":"` + callback.URL + `"}`
	req := httptest.NewRequest(http.MethodPost, "/ran-event-exposure/v1/subscriptions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go stub.Run(ctx)

	require.Eventually(t, func() bool { return received.Load() > 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestReceiveDataOverridesNextNotification(t *testing.T) {
	stub := New()
	e := echo.New()
	stub.Register(e)

	body := `{"lte_rsrp":-80,"nr_ssRsrp":-90.5}`
	req := httptest.NewRequest(http.MethodPost, "/data", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, stub.override)
	require.Equal(t, -80, *stub.override.LteRsrp)
}
