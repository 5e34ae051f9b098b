package adrf

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/chris-alexander-pop/system-design-library/internal/catalog"
	"github.com/chris-alexander-pop/system-design-library/pkg/messaging"
	memorybroker "github.com/chris-alexander-pop/system-design-library/pkg/messaging/adapters/memory"

	memorydoc "github.com/chris-alexander-pop/system-design-library/pkg/database/document/adapters/memory"
	"github.com/stretchr/testify/require"
)

func publishEnvelope(t *testing.T, ctx context.Context, p messaging.Producer, resourceID string, op messaging.OpType, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	body, err := json.Marshal(messaging.Envelope{OpType: op, ResourceID: resourceID, ResourceData: data})
	require.NoError(t, err)
	require.NoError(t, p.Publish(ctx, &messaging.Message{Key: []byte(resourceID), Payload: body}))
}

func TestADRFCapturesActiveDatasetNotification(t *testing.T) {
	broker := memorybroker.New(memorybroker.Config{BufferSize: 16})
	store := memorydoc.New()
	svc, err := New(Config{ServiceName: "adrf-test"}, broker, store)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	collectProducer, err := broker.Producer(catalog.DatasetCollectionSubscriptionTopic())
	require.NoError(t, err)
	publishEnvelope(t, ctx, collectProducer, "D1", messaging.OpCreate, InnerSubscription{DataSetID: "D1", AmfDataSub: &NFDataSub{}})

	time.Sleep(50 * time.Millisecond)

	amfEvent := catalog.DefaultEventForNF[catalog.NFAMF]
	amfProducer, err := broker.Producer(catalog.EventExposureDeliveryTopic(catalog.NFAMF, amfEvent))
	require.NoError(t, err)
	publishEnvelope(t, ctx, amfProducer, "D1", messaging.OpReceive, map[string]interface{}{
		"correlation_id": "D1",
		"time_stamp":     float64(100),
	})

	time.Sleep(100 * time.Millisecond)

	docs, err := store.Find(ctx, "D1", nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "AmfEventNotification", docs[0]["type_tag"])
}

func TestADRFRetrievalWindowAndTermination(t *testing.T) {
	broker := memorybroker.New(memorybroker.Config{BufferSize: 16})
	store := memorydoc.New()
	svc, err := New(Config{ServiceName: "adrf-test-2"}, broker, store)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	require.NoError(t, store.Insert(ctx, "D1", map[string]interface{}{"type_tag": "T", "payload": map[string]interface{}{}, "timestamp": int64(1)}))
	require.NoError(t, store.Insert(ctx, "D1", map[string]interface{}{"type_tag": "T", "payload": map[string]interface{}{}, "timestamp": int64(2)}))
	require.NoError(t, store.Insert(ctx, "D1", map[string]interface{}{"type_tag": "T", "payload": map[string]interface{}{}, "timestamp": int64(3)}))

	deliveryConsumer, err := broker.Consumer(catalog.DatasetRetrievalDeliveryTopic(), "observer")
	require.NoError(t, err)

	retrieveProducer, err := broker.Producer(catalog.DatasetRetrievalSubscriptionTopic())
	require.NoError(t, err)
	publishEnvelope(t, ctx, retrieveProducer, "R1", messaging.OpCreate, RetrievalSubscription{
		DataSetID: "D1", NotifCorrID: "R1", TimePeriod: TimePeriod{Start: 1, Stop: 2},
	})

	messages := make(chan *messaging.Message, 4)
	go func() {
		_ = deliveryConsumer.Consume(ctx, func(ctx context.Context, msg *messaging.Message) error {
			messages <- msg
			return nil
		})
	}()

	var received []RetrievalNotification
	deadline := time.After(1 * time.Second)
	for len(received) < 2 {
		select {
		case msg := <-messages:
			var env messaging.Envelope
			require.NoError(t, json.Unmarshal(msg.Payload, &env))
			var notif RetrievalNotification
			require.NoError(t, json.Unmarshal(env.ResourceData, &notif))
			received = append(received, notif)
		case <-deadline:
			t.Fatal("timed out waiting for retrieval notifications")
		}
	}

	require.Len(t, received, 2)
	require.False(t, received[0].TerminationReq)
	require.True(t, received[1].TerminationReq)
}
