// Package throughput implements the MTLF side of the UE_LOC_THROUGHPUT
// model: it replies to provisioning requests with a model location and
// optionally opens an ADRF data-collection subscription to archive
// training data. It does not train — model files are supplied out of
// band.
package throughput

import (
	"context"

	"github.com/chris-alexander-pop/system-design-library/internal/catalog"
	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
	"github.com/chris-alexander-pop/system-design-library/pkg/messaging"
	"github.com/chris-alexander-pop/system-design-library/pkg/service"
)

// MLModelRequest mirrors the AnLF's provisioning CREATE payload.
type MLModelRequest struct {
	Event string `json:"event"`
}

// MLModelDelivery is the reply this service publishes.
type MLModelDelivery struct {
	Event      string `json:"event"`
	MLModelURL string `json:"m_l_model_url"`
}

// NFDataSub mirrors adrf.NFDataSub: an empty, presence-only marker whose
// slot being non-nil selects which NF ADRF should re-subscribe to.
type NFDataSub struct{}

// DataCollectionSubscription is the optional archival request MTLF can
// open with ADRF, embedding one populated NF-specific inner subscription
// slot per ADRF's dispatch table. UE_LOC_THROUGHPUT is predicted from
// GMLC location and RAN signal-quality notifications, so archiving its
// training data means archiving those two NFs' deliveries.
type DataCollectionSubscription struct {
	DataSetID string `json:"data_set_id"`

	GmlcDataSub *NFDataSub `json:"gmlc_data_sub,omitempty"`
	RanDataSub  *NFDataSub `json:"ran_data_sub,omitempty"`
}

// Config configures the MTLF responder.
type Config struct {
	ServiceName    string `env:"MTLF_SERVICE_NAME" env-default:"mtlf-throughput" validate:"required"`
	ModelURL       string `env:"MTLF_MODEL_URL" validate:"required"`
	ArchiveTraining bool   `env:"MTLF_ARCHIVE_TRAINING" env-default:"false"`
}

// Service responds to UE_LOC_THROUGHPUT model-provisioning requests.
type Service struct {
	*service.Base

	cfg Config

	delivery   *messaging.WriteHandler[MLModelDelivery]
	dataCollect *messaging.WriteHandler[DataCollectionSubscription]
}

// New wires the MTLF responder onto broker.
func New(cfg Config, broker messaging.Broker) (*Service, error) {
	reqConsumer, err := broker.Consumer(catalog.MLModelProvisionSubscriptionTopic(catalog.EventUELocThroughput), cfg.ServiceName)
	if err != nil {
		return nil, err
	}
	deliveryProducer, err := broker.Producer(catalog.MLModelProvisionDeliveryTopic(catalog.EventUELocThroughput))
	if err != nil {
		return nil, err
	}
	dataCollectProducer, err := broker.Producer(catalog.DatasetCollectionSubscriptionTopic())
	if err != nil {
		return nil, err
	}

	svc := &Service{
		Base:        service.New(service.Config{Name: cfg.ServiceName}, broker),
		cfg:         cfg,
		delivery:    messaging.NewWriteHandler[MLModelDelivery](catalog.MLModelProvisionDeliveryTopic(catalog.EventUELocThroughput), messaging.ModeReceive, deliveryProducer),
		dataCollect: messaging.NewWriteHandler[DataCollectionSubscription](catalog.DatasetCollectionSubscriptionTopic(), messaging.ModeCRUD, dataCollectProducer),
	}

	reqRead := messaging.NewReadHandler[MLModelRequest](catalog.MLModelProvisionSubscriptionTopic(catalog.EventUELocThroughput), messaging.ModeCRUD, reqConsumer).
		OnCRUD(messaging.CRUDCallbacks[MLModelRequest]{
			OnCreate: svc.handleProvisionRequest,
		})

	service.AddReadHandler(svc.Base, "provision-request-consumer", reqRead)
	svc.AddCloser(svc.delivery)
	svc.AddCloser(svc.dataCollect)

	return svc, nil
}

func (s *Service) handleProvisionRequest(ctx context.Context, serviceName string, req MLModelRequest) {
	if err := s.delivery.Enqueue(ctx, serviceName, MLModelDelivery{
		Event:      req.Event,
		MLModelURL: s.cfg.ModelURL,
	}, messaging.OpReceive); err != nil {
		logger.L().ErrorContext(ctx, "failed to deliver model location", "requester", serviceName, "error", err)
	}

	if !s.cfg.ArchiveTraining {
		return
	}

	dataSetID := "training." + req.Event
	sub := DataCollectionSubscription{
		DataSetID:   dataSetID,
		GmlcDataSub: &NFDataSub{},
		RanDataSub:  &NFDataSub{},
	}
	if err := s.dataCollect.Enqueue(ctx, dataSetID, sub, messaging.OpCreate); err != nil {
		logger.L().ErrorContext(ctx, "failed to open ADRF archival subscription", "data_set_id", dataSetID, "error", err)
	}
}
