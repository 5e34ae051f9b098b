package gmlc

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

func TestProvideLocationNotifiesCallback(t *testing.T) {
	var received atomic.Int32
	callback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var notif Notification
		require.NoError(t, json.NewDecoder(r.Body).Decode(&notif))
		require.Equal(t, "ref-1", notif.LdrReference)
		received.Add(1)
	}))
	defer callback.Close()

	stub := New()
	e := echo.New()
	stub.Register(e)

	body := `{"supi":"imsi-001","ldr_reference":"ref-1","periodic":{"interval":1,"infinite":true},"callback_url":"` + callback.URL + `"}`
	req := httptest.NewRequest(http.MethodPost, "/ngmlc-loc/v1/provide-location", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go stub.Run(ctx)

	require.Eventually(t, func() bool { return received.Load() > 0 }, 2*time.Second, 10*time.Millisecond)
}
