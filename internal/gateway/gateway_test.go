package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chris-alexander-pop/system-design-library/internal/anlf/throughput"
	"github.com/chris-alexander-pop/system-design-library/internal/catalog"
	"github.com/chris-alexander-pop/system-design-library/pkg/messaging"
	memorybroker "github.com/chris-alexander-pop/system-design-library/pkg/messaging/adapters/memory"
	"github.com/stretchr/testify/require"
)

func TestHandleCreateRepublishesOntoBus(t *testing.T) {
	broker := memorybroker.New(memorybroker.Config{BufferSize: 8})

	consumer, err := broker.Consumer(catalog.NwdafEventSubscriptionTopic(catalog.EventUELocThroughput), "observer")
	require.NoError(t, err)

	producer, err := broker.Producer(catalog.NwdafEventSubscriptionTopic(catalog.EventUELocThroughput))
	require.NoError(t, err)

	gw := New(Config{ServiceName: "gateway-test", Port: 0})
	gw.RegisterEvent(catalog.EventUELocThroughput, messaging.NewWriteHandler[throughput.AnalyticsSubscriptionRequest](
		catalog.NwdafEventSubscriptionTopic(catalog.EventUELocThroughput), messaging.ModeCRUD, producer))

	body := `{"event":"UE_LOC_THROUGHPUT","supis":["imsi-001"],"notification_uri":"http://sink/analytics-notification"}`
	req := httptest.NewRequest(http.MethodPost, "/nnwdaf-eventsubscription/v1/subscriptions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	gw.echo.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	received := make(chan *messaging.Message, 1)
	go func() {
		_ = consumer.Consume(ctx, func(ctx context.Context, msg *messaging.Message) error {
			received <- msg
			return nil
		})
	}()

	select {
	case msg := <-received:
		var env messaging.Envelope
		require.NoError(t, json.Unmarshal(msg.Payload, &env))
		require.Equal(t, messaging.OpCreate, env.OpType)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for republished subscription")
	}
}
