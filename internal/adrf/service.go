package adrf

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chris-alexander-pop/system-design-library/internal/catalog"
	"github.com/chris-alexander-pop/system-design-library/pkg/database/document"
	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
	"github.com/chris-alexander-pop/system-design-library/pkg/messaging"
	"github.com/chris-alexander-pop/system-design-library/pkg/service"
)

// Config configures the ADRF service.
type Config struct {
	ServiceName string `env:"ADRF_SERVICE_NAME" env-default:"adrf" validate:"required"`
}

// Service is the analytics data repository function.
type Service struct {
	*service.Base

	cfg   Config
	store document.Interface

	retrievalOut *messaging.WriteHandler[RetrievalNotification]

	innerSubOut map[catalog.NFType]*messaging.WriteHandler[map[string]interface{}]

	mu     sync.Mutex
	active map[string]bool // data_set_id -> collecting
}

// New wires the ADRF service onto broker, persisting into store. It
// subscribes to the dataset-collection and dataset-retrieval control
// topics plus every NF's event-exposure delivery topic named in the
// catalog.
func New(cfg Config, broker messaging.Broker, store document.Interface) (*Service, error) {
	svc := &Service{
		cfg:         cfg,
		store:       store,
		innerSubOut: make(map[catalog.NFType]*messaging.WriteHandler[map[string]interface{}]),
		active:      make(map[string]bool),
	}
	svc.Base = service.New(service.Config{Name: cfg.ServiceName}, broker)

	collectConsumer, err := broker.Consumer(catalog.DatasetCollectionSubscriptionTopic(), cfg.ServiceName)
	if err != nil {
		return nil, err
	}
	retrieveConsumer, err := broker.Consumer(catalog.DatasetRetrievalSubscriptionTopic(), cfg.ServiceName)
	if err != nil {
		return nil, err
	}
	retrievalProducer, err := broker.Producer(catalog.DatasetRetrievalDeliveryTopic())
	if err != nil {
		return nil, err
	}
	svc.retrievalOut = messaging.NewWriteHandler[RetrievalNotification](catalog.DatasetRetrievalDeliveryTopic(), messaging.ModeReceive, retrievalProducer)
	svc.AddCloser(svc.retrievalOut)

	for _, nf := range catalog.AllNFTypes {
		event := catalog.DefaultEventForNF[nf]

		subProducer, err := broker.Producer(catalog.EventExposureSubscriptionTopic(nf, event))
		if err != nil {
			return nil, err
		}
		wh := messaging.NewWriteHandler[map[string]interface{}](catalog.EventExposureSubscriptionTopic(nf, event), messaging.ModeCRUD, subProducer)
		svc.innerSubOut[nf] = wh
		svc.AddCloser(wh)

		deliveryConsumer, err := broker.Consumer(catalog.EventExposureDeliveryTopic(nf, event), cfg.ServiceName)
		if err != nil {
			return nil, err
		}
		nf := nf
		rh := messaging.NewReadHandler[map[string]interface{}](catalog.EventExposureDeliveryTopic(nf, event), messaging.ModeReceive, deliveryConsumer).
			OnReceive(func(ctx context.Context, payload map[string]interface{}) {
				svc.handleNotification(ctx, nf, payload)
			})
		service.AddReadHandler(svc.Base, "delivery-consumer-"+string(nf), rh)
	}

	collectRead := messaging.NewReadHandler[InnerSubscription](catalog.DatasetCollectionSubscriptionTopic(), messaging.ModeCRUD, collectConsumer).
		OnCRUD(messaging.CRUDCallbacks[InnerSubscription]{
			OnCreate: svc.handleCollectionCreate,
			OnDelete: svc.handleCollectionDelete,
		})
	service.AddReadHandler(svc.Base, "collection-consumer", collectRead)

	retrieveRead := messaging.NewReadHandler[RetrievalSubscription](catalog.DatasetRetrievalSubscriptionTopic(), messaging.ModeCRUD, retrieveConsumer).
		OnCRUD(messaging.CRUDCallbacks[RetrievalSubscription]{
			OnCreate: func(ctx context.Context, _ string, req RetrievalSubscription) {
				svc.handleRetrieval(ctx, req)
			},
		})
	service.AddReadHandler(svc.Base, "retrieval-consumer", retrieveRead)

	return svc, nil
}

func (s *Service) handleCollectionCreate(ctx context.Context, dataSetID string, inner InnerSubscription) {
	s.mu.Lock()
	s.active[dataSetID] = true
	s.mu.Unlock()

	for _, nf := range inner.targetNFs() {
		wh, ok := s.innerSubOut[nf]
		if !ok {
			continue
		}
		if err := wh.Enqueue(ctx, dataSetID, map[string]interface{}{"data_set_id": dataSetID}, messaging.OpCreate); err != nil {
			logger.L().ErrorContext(ctx, "failed to re-emit event-exposure subscription", "data_set_id", dataSetID, "nf", nf, "error", err)
		}
	}
}

func (s *Service) handleCollectionDelete(ctx context.Context, dataSetID string, _ InnerSubscription) {
	s.mu.Lock()
	delete(s.active, dataSetID)
	s.mu.Unlock()
}

// handleNotification is invoked for every NF's event-exposure delivery.
// It projects the correlation field per nf's catalog entry and, if that
// value names an active dataset, persists a record.
func (s *Service) handleNotification(ctx context.Context, nf catalog.NFType, payload map[string]interface{}) {
	projection := catalog.ProjectionFor(nf)

	corrValue, _ := payload[projection.CorrelationField].(string)
	if corrValue == "" {
		logger.L().DebugContext(ctx, "event-exposure notification missing correlation field", "nf", nf, "field", projection.CorrelationField)
		return
	}

	s.mu.Lock()
	active := s.active[corrValue]
	s.mu.Unlock()
	if !active {
		logger.L().DebugContext(ctx, "dropping notification for inactive dataset", "nf", nf, "data_set_id", corrValue)
		return
	}

	ts := extractTimestamp(payload, projection.TimestampField)

	doc := document.Document{
		"type_tag":  projection.NotificationTag,
		"payload":   payload,
		"timestamp": ts,
	}
	if err := s.store.Insert(ctx, corrValue, doc); err != nil {
		logger.L().ErrorContext(ctx, "failed to persist dataset record", "data_set_id", corrValue, "error", err)
	}
}

// extractTimestamp reads the top-level numeric field from payload. When
// field is empty, or the value is missing or not numeric, it falls back
// to the current time (time.Now().Unix()).
func extractTimestamp(payload map[string]interface{}, field string) int64 {
	if field == "" {
		return time.Now().Unix()
	}
	switch v := payload[field].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	default:
		return time.Now().Unix()
	}
}

func (s *Service) handleRetrieval(ctx context.Context, req RetrievalSubscription) {
	docs, err := s.store.Find(ctx, req.DataSetID, nil)
	if err != nil {
		logger.L().ErrorContext(ctx, "failed to scan dataset collection", "data_set_id", req.DataSetID, "error", err)
		return
	}

	var matched []document.Document
	for _, d := range docs {
		ts, _ := d["timestamp"].(int64)
		if ts >= req.TimePeriod.Start && ts <= req.TimePeriod.Stop {
			matched = append(matched, d)
		}
	}

	// Records are emitted in scan order, not sorted by timestamp: callers
	// must not assume timestamp order unless the underlying store
	// guarantees it.
	for idx, d := range matched {
		typeTag, _ := d["type_tag"].(string)
		payload, _ := d["payload"].(map[string]interface{})
		ts, _ := d["timestamp"].(int64)

		notif := RetrievalNotification{
			NotifCorrID:    req.NotifCorrID,
			TypeTag:        typeTag,
			Payload:        payload,
			Timestamp:      ts,
			TerminationReq: idx == len(matched)-1,
		}

		key := fmt.Sprintf("%s-%d", req.DataSetID, idx)
		if err := s.retrievalOut.Enqueue(ctx, req.DataSetID, notif, messaging.OpReceive); err != nil {
			logger.L().ErrorContext(ctx, "failed to publish retrieval notification", "data_set_id", req.DataSetID, "index", idx, "key", key, "error", err)
		}
	}
}
