package throughput

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/chris-alexander-pop/system-design-library/internal/adrf"
	"github.com/chris-alexander-pop/system-design-library/internal/catalog"
	memorystore "github.com/chris-alexander-pop/system-design-library/pkg/database/document/adapters/memory"
	"github.com/chris-alexander-pop/system-design-library/pkg/messaging"
	memorybroker "github.com/chris-alexander-pop/system-design-library/pkg/messaging/adapters/memory"
	"github.com/stretchr/testify/require"
)

func TestHandleProvisionRequestDeliversModelURL(t *testing.T) {
	broker := memorybroker.New(memorybroker.Config{BufferSize: 8})
	svc, err := New(Config{ServiceName: "mtlf-test", ModelURL: "s3://models/v1"}, broker)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	runCtx := svc.Start(ctx)
	defer svc.Stop()

	deliveryConsumer, err := broker.Consumer(catalog.MLModelProvisionDeliveryTopic(catalog.EventUELocThroughput), "observer")
	require.NoError(t, err)

	reqProducer, err := broker.Producer(catalog.MLModelProvisionSubscriptionTopic(catalog.EventUELocThroughput))
	require.NoError(t, err)

	payload, err := json.Marshal(MLModelRequest{Event: string(catalog.EventUELocThroughput)})
	require.NoError(t, err)
	body, err := json.Marshal(messaging.Envelope{OpType: messaging.OpCreate, ResourceID: "anlf-throughput", ResourceData: payload})
	require.NoError(t, err)

	require.NoError(t, reqProducer.Publish(ctx, &messaging.Message{Key: []byte("anlf-throughput"), Payload: body}))

	received := make(chan *messaging.Message, 1)
	go func() {
		_ = deliveryConsumer.Consume(runCtx, func(ctx context.Context, msg *messaging.Message) error {
			received <- msg
			return nil
		})
	}()

	select {
	case msg := <-received:
		require.Equal(t, "anlf-throughput", string(msg.Key))
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for model delivery")
	}
}

// TestArchiveTrainingActivatesADRFDataset exercises the
// MTLF_ARCHIVE_TRAINING path end-to-end against a real ADRF instance
// sharing the same broker: the dataset-collection subscription MTLF opens
// must name GMLC and RAN, or ADRF never re-subscribes and nothing it
// marks active ever receives a notification.
func TestArchiveTrainingActivatesADRFDataset(t *testing.T) {
	broker := memorybroker.New(memorybroker.Config{BufferSize: 16})
	store := memorystore.New()

	adrfSvc, err := adrf.New(adrf.Config{ServiceName: "adrf-test"}, broker, store)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	adrfSvc.Start(ctx)
	defer adrfSvc.Stop()

	mtlfSvc, err := New(Config{ServiceName: "mtlf-test", ModelURL: "s3://models/v1", ArchiveTraining: true}, broker)
	require.NoError(t, err)
	mtlfSvc.Start(ctx)
	defer mtlfSvc.Stop()

	reqProducer, err := broker.Producer(catalog.MLModelProvisionSubscriptionTopic(catalog.EventUELocThroughput))
	require.NoError(t, err)

	payload, err := json.Marshal(MLModelRequest{Event: string(catalog.EventUELocThroughput)})
	require.NoError(t, err)
	body, err := json.Marshal(messaging.Envelope{OpType: messaging.OpCreate, ResourceID: "anlf-throughput", ResourceData: payload})
	require.NoError(t, err)
	require.NoError(t, reqProducer.Publish(ctx, &messaging.Message{Key: []byte("anlf-throughput"), Payload: body}))

	// Give the request time to reach MTLF and MTLF's archival subscription
	// time to reach ADRF before feeding the notification it should archive.
	time.Sleep(100 * time.Millisecond)

	dataSetID := "training." + string(catalog.EventUELocThroughput)

	gmlcProducer, err := broker.Producer(catalog.EventExposureDeliveryTopic(catalog.NFGMLC, catalog.EventPeriodic))
	require.NoError(t, err)
	gmlcPayload, err := json.Marshal(map[string]interface{}{"ldr_reference": dataSetID, "supi": "imsi-001"})
	require.NoError(t, err)
	gmlcBody, err := json.Marshal(messaging.Envelope{OpType: messaging.OpReceive, ResourceID: dataSetID, ResourceData: gmlcPayload})
	require.NoError(t, err)
	require.NoError(t, gmlcProducer.Publish(ctx, &messaging.Message{Key: []byte(dataSetID), Payload: gmlcBody}))

	require.Eventually(t, func() bool {
		docs, err := store.Find(ctx, dataSetID, nil)
		return err == nil && len(docs) == 1
	}, time.Second, 10*time.Millisecond, "expected the GMLC notification to be archived under the training dataset")
}
