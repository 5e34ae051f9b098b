package throughput

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/chris-alexander-pop/system-design-library/internal/catalog"
	"github.com/chris-alexander-pop/system-design-library/pkg/ai/ml/inference"
	"github.com/chris-alexander-pop/system-design-library/pkg/fsm"
	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
	"github.com/chris-alexander-pop/system-design-library/pkg/messaging"
	"github.com/chris-alexander-pop/system-design-library/pkg/service"
)

// Unit selects the string suffix attached to a formatted throughput
// value. Open question (a): source revisions disagree between Mbps and
// Kbps — treat it as a service-level configuration constant.
type Unit string

const (
	UnitMbps Unit = "Mbps"
	UnitKbps Unit = "Kbps"
)

// Config configures the throughput AnLF service.
type Config struct {
	ServiceName   string `env:"ANLF_SERVICE_NAME" env-default:"anlf-throughput" validate:"required"`
	TickPeriod    time.Duration
	ThroughputUnit Unit
	ModelName     string
}

func (c *Config) applyDefaults() {
	if c.TickPeriod <= 0 {
		c.TickPeriod = 300 * time.Millisecond
	}
	if c.ThroughputUnit == "" {
		c.ThroughputUnit = UnitMbps
	}
	if c.ModelName == "" {
		c.ModelName = "ue-loc-throughput"
	}
}

// perSUPI is the mutable state for one (sub_id, SUPI) pair. It is only
// ever touched from the service's single sequencer goroutine, per the
// "collapse callbacks into one ordering-preserving loop" design note —
// no lock is needed.
type perSUPI struct {
	subID string
	supi  string

	machine *fsm.Machine[State, Transition]

	pendingGMLC *GMLCNotification
	pendingRAN  *RANNotification
	prediction  *float64

	loggedInferenceUnavailable bool
}

type key struct {
	subID string
	supi  string
}

// Service is the throughput AnLF: it owns one active per-SUPI state
// machine per subscribed SUPI and drives it from a single tick loop.
type Service struct {
	*service.Base

	cfg Config

	gmlcSub  *messaging.WriteHandler[GMLCSubscriptionRequest]
	ranSub   *messaging.WriteHandler[RANSubscriptionRequest]
	notifOut *messaging.WriteHandler[AnalyticsNotification]
	modelReq *messaging.WriteHandler[MLModelRequest]

	inference inference.InferenceServer
	modelReady atomic.Bool

	// events is the single inbound sequencer channel every read-handler
	// callback feeds; the tick loop is its only consumer. This is the
	// "tagged message + selector loop" fan-in design note applied.
	events chan inboundEvent

	states     map[key]*perSUPI
	stateOrder []key // insertion order, for deterministic tick visitation
}

type eventKind int

const (
	evSubscriptionCreate eventKind = iota
	evSubscriptionDelete
	evGMLCNotification
	evRANNotification
	evModelDelivery
)

type inboundEvent struct {
	kind eventKind

	subID   string
	request AnalyticsSubscriptionRequest

	gmlc *GMLCNotification
	ran  *RANNotification

	model *MLModelDelivery
}

// New builds the throughput service, wiring its read/write handlers onto
// broker and registering its tasks with the embedded service.Base.
func New(cfg Config, broker messaging.Broker, infer inference.InferenceServer) (*Service, error) {
	cfg.applyDefaults()

	gmlcProducer, err := broker.Producer(catalog.EventExposureSubscriptionTopic(catalog.NFGMLC, catalog.EventPeriodic))
	if err != nil {
		return nil, err
	}
	ranProducer, err := broker.Producer(catalog.EventExposureSubscriptionTopic(catalog.NFRAN, catalog.EventRSRPInfo))
	if err != nil {
		return nil, err
	}
	notifProducer, err := broker.Producer(catalog.NwdafEventDeliveryTopic(catalog.EventUELocThroughput))
	if err != nil {
		return nil, err
	}
	modelReqProducer, err := broker.Producer(catalog.MLModelProvisionSubscriptionTopic(catalog.EventUELocThroughput))
	if err != nil {
		return nil, err
	}

	subConsumer, err := broker.Consumer(catalog.NwdafEventSubscriptionTopic(catalog.EventUELocThroughput), cfg.ServiceName)
	if err != nil {
		return nil, err
	}
	gmlcConsumer, err := broker.Consumer(catalog.EventExposureDeliveryTopic(catalog.NFGMLC, catalog.EventPeriodic), cfg.ServiceName)
	if err != nil {
		return nil, err
	}
	ranConsumer, err := broker.Consumer(catalog.EventExposureDeliveryTopic(catalog.NFRAN, catalog.EventRSRPInfo), cfg.ServiceName)
	if err != nil {
		return nil, err
	}
	modelConsumer, err := broker.Consumer(catalog.MLModelProvisionDeliveryTopic(catalog.EventUELocThroughput), cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	svc := &Service{
		Base:      service.New(service.Config{Name: cfg.ServiceName}, broker),
		cfg:       cfg,
		gmlcSub:   messaging.NewWriteHandler[GMLCSubscriptionRequest](catalog.EventExposureSubscriptionTopic(catalog.NFGMLC, catalog.EventPeriodic), messaging.ModeCRUD, gmlcProducer),
		ranSub:    messaging.NewWriteHandler[RANSubscriptionRequest](catalog.EventExposureSubscriptionTopic(catalog.NFRAN, catalog.EventRSRPInfo), messaging.ModeCRUD, ranProducer),
		notifOut:  messaging.NewWriteHandler[AnalyticsNotification](catalog.NwdafEventDeliveryTopic(catalog.EventUELocThroughput), messaging.ModeReceive, notifProducer),
		modelReq:  messaging.NewWriteHandler[MLModelRequest](catalog.MLModelProvisionSubscriptionTopic(catalog.EventUELocThroughput), messaging.ModeCRUD, modelReqProducer),
		inference: infer,
		events:    make(chan inboundEvent, 256),
		states:    make(map[key]*perSUPI),
	}

	subRead := messaging.NewReadHandler[AnalyticsSubscriptionRequest](catalog.NwdafEventSubscriptionTopic(catalog.EventUELocThroughput), messaging.ModeCRUD, subConsumer).
		OnCRUD(messaging.CRUDCallbacks[AnalyticsSubscriptionRequest]{
			OnCreate: func(ctx context.Context, subID string, req AnalyticsSubscriptionRequest) {
				svc.events <- inboundEvent{kind: evSubscriptionCreate, subID: subID, request: req}
			},
			OnDelete: func(ctx context.Context, subID string, _ AnalyticsSubscriptionRequest) {
				svc.events <- inboundEvent{kind: evSubscriptionDelete, subID: subID}
			},
		})

	gmlcRead := messaging.NewReadHandler[GMLCNotification](catalog.EventExposureDeliveryTopic(catalog.NFGMLC, catalog.EventPeriodic), messaging.ModeReceive, gmlcConsumer).
		OnReceive(func(ctx context.Context, n GMLCNotification) {
			svc.events <- inboundEvent{kind: evGMLCNotification, gmlc: &n}
		})

	ranRead := messaging.NewReadHandler[RANNotification](catalog.EventExposureDeliveryTopic(catalog.NFRAN, catalog.EventRSRPInfo), messaging.ModeReceive, ranConsumer).
		OnReceive(func(ctx context.Context, n RANNotification) {
			svc.events <- inboundEvent{kind: evRANNotification, ran: &n}
		})

	modelRead := messaging.NewReadHandler[MLModelDelivery](catalog.MLModelProvisionDeliveryTopic(catalog.EventUELocThroughput), messaging.ModeReceive, modelConsumer).
		OnReceive(func(ctx context.Context, d MLModelDelivery) {
			svc.events <- inboundEvent{kind: evModelDelivery, model: &d}
		})

	service.AddReadHandler(svc.Base, "subscription-consumer", subRead)
	service.AddReadHandler(svc.Base, "gmlc-consumer", gmlcRead)
	service.AddReadHandler(svc.Base, "ran-consumer", ranRead)
	service.AddReadHandler(svc.Base, "model-consumer", modelRead)

	svc.AddCloser(svc.gmlcSub)
	svc.AddCloser(svc.ranSub)
	svc.AddCloser(svc.notifOut)
	svc.AddCloser(svc.modelReq)

	svc.AddTask("ml-provision-request", svc.requestModel)
	svc.AddTask("tick-loop", svc.runTickLoop)

	return svc, nil
}

// requestModel publishes the one-shot CREATE requesting the throughput
// model, keyed by service name per §4.4.
func (s *Service) requestModel(ctx context.Context) {
	if err := s.modelReq.Enqueue(ctx, s.cfg.ServiceName, MLModelRequest{Event: string(catalog.EventUELocThroughput)}, messaging.OpCreate); err != nil {
		logger.L().ErrorContext(ctx, "failed to request ML model provisioning", "error", err)
	}
}

// runTickLoop is the single sequencer: it owns every per-SUPI state and
// is fed by ticks and by tagged inbound events from the read handlers.
func (s *Service) runTickLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.TickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.events:
			s.handleEvent(ctx, ev)
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Service) handleEvent(ctx context.Context, ev inboundEvent) {
	switch ev.kind {
	case evSubscriptionCreate:
		for _, supi := range ev.request.SUPIs {
			k := key{subID: ev.subID, supi: supi}
			if _, exists := s.states[k]; exists {
				continue
			}
			s.states[k] = &perSUPI{subID: ev.subID, supi: supi, machine: newMachine()}
			s.stateOrder = append(s.stateOrder, k)
		}
	case evSubscriptionDelete:
		for k, st := range s.states {
			if k.subID != ev.subID {
				continue
			}
			if err := st.machine.Fire(TransitionDeletionRequested); err != nil {
				logger.L().ErrorContext(ctx, "invalid transition", "state", st.machine.State(), "transition", TransitionDeletionRequested, "error", err)
			}
		}
	case evGMLCNotification:
		k := key{subID: ev.gmlc.LdrReference, supi: ev.gmlc.SUPI}
		st, ok := s.states[k]
		if !ok || st.machine.State() == StateDeleting {
			logger.L().DebugContext(ctx, "dropping GMLC notification with no live subscription", "ldr_reference", ev.gmlc.LdrReference, "supi", ev.gmlc.SUPI)
			return
		}
		st.pendingGMLC = ev.gmlc
	case evRANNotification:
		k := key{subID: ev.ran.CorrelationID, supi: ev.ran.UEID}
		st, ok := s.states[k]
		if !ok || st.machine.State() == StateDeleting {
			logger.L().DebugContext(ctx, "dropping RAN notification with no live subscription", "correlation_id", ev.ran.CorrelationID, "ue_id", ev.ran.UEID)
			return
		}
		st.pendingRAN = ev.ran
	case evModelDelivery:
		s.loadModel(ctx, ev.model)
	}
}

func (s *Service) loadModel(ctx context.Context, d *MLModelDelivery) {
	_, err := s.inference.LoadModel(ctx, inference.Config{Name: s.cfg.ModelName, ModelPath: d.MLModelURL})
	if err != nil {
		logger.L().ErrorContext(ctx, "failed to load ML model", "model_url", d.MLModelURL, "error", err)
		return
	}
	s.modelReady.Store(true)
	logger.L().InfoContext(ctx, "ML model loaded", "model_url", d.MLModelURL)
}

// tick drives every per-SUPI state machine one step, in insertion order.
func (s *Service) tick(ctx context.Context) {
	remaining := s.stateOrder[:0]
	for _, k := range s.stateOrder {
		st := s.states[k]
		s.step(ctx, st)
		if st.machine.State() == StateDeleting {
			delete(s.states, k)
			continue
		}
		remaining = append(remaining, k)
	}
	s.stateOrder = remaining
}

func (s *Service) step(ctx context.Context, st *perSUPI) {
	switch st.machine.State() {
	case StateInitializing:
		s.initialize(ctx, st)
	case StateWaitingForGMLCNotif, StateWaitingForRANNotif:
		s.checkNotifications(ctx, st)
	case StatePredictingThroughput:
		s.predict(ctx, st)
	case StateSendingAnalyticsNotif:
		s.sendNotification(ctx, st)
	}
}

func (s *Service) initialize(ctx context.Context, st *perSUPI) {
	if err := s.gmlcSub.Enqueue(ctx, st.subID, GMLCSubscriptionRequest{
		SUPI:            st.supi,
		LdrReference:    st.subID,
		Periodic:        GMLCPeriodic{Interval: 10, Infinite: true},
		CurrentLocation: true,
	}, messaging.OpCreate); err != nil {
		logger.L().ErrorContext(ctx, "failed to enqueue GMLC subscription", "sub_id", st.subID, "supi", st.supi, "error", err)
	}

	if err := s.ranSub.Enqueue(ctx, st.subID, RANSubscriptionRequest{
		CorrelationID: st.subID,
		UEIDs:         []string{st.supi},
		Periodicity:   10,
	}, messaging.OpCreate); err != nil {
		logger.L().ErrorContext(ctx, "failed to enqueue RAN subscription", "sub_id", st.subID, "supi", st.supi, "error", err)
	}

	s.fire(ctx, st, TransitionInitializationDone)
}

func (s *Service) checkNotifications(ctx context.Context, st *perSUPI) {
	if st.pendingGMLC != nil && st.pendingRAN != nil {
		s.fire(ctx, st, TransitionAllNotifsReceived)
		return
	}
	s.fire(ctx, st, TransitionWaitingForNotifs)
}

func (s *Service) predict(ctx context.Context, st *perSUPI) {
	if !s.modelReady.Load() {
		if !st.loggedInferenceUnavailable {
			logger.L().WarnContext(ctx, "inference model not yet loaded, retrying next tick", "sub_id", st.subID, "supi", st.supi)
			st.loggedInferenceUnavailable = true
		}
		return
	}

	input := []float32{
		float32(st.pendingGMLC.Point.Lat),
		float32(st.pendingGMLC.Point.Lon),
		float32(st.pendingRAN.LteRSRP),
		float32(st.pendingRAN.NrSSRSRP),
		float32(st.pendingGMLC.HSpeed),
		float32(st.pendingGMLC.Bearing),
	}

	resp, err := s.inference.Predict(ctx, &inference.PredictRequest{
		ModelName: s.cfg.ModelName,
		Inputs: map[string]inference.Tensor{
			"input": {Name: "input", Shape: []int64{1, 1, 6}, DataType: inference.DataTypeFloat32, Data: float32sToBytes(input)},
		},
	})
	if err != nil {
		logger.L().ErrorContext(ctx, "prediction request failed", "sub_id", st.subID, "supi", st.supi, "error", err)
		return
	}

	value := extractPrediction(resp)
	abs := math.Abs(value)
	st.prediction = &abs
	st.pendingGMLC = nil
	st.pendingRAN = nil
	st.loggedInferenceUnavailable = false

	s.fire(ctx, st, TransitionPredictionDone)
}

func (s *Service) sendNotification(ctx context.Context, st *perSUPI) {
	if st.prediction == nil {
		logger.L().ErrorContext(ctx, "entered SENDING_ANALYTICS_NOTIF with no pending prediction", "sub_id", st.subID, "supi", st.supi)
		s.fire(ctx, st, TransitionAnalyticsNotifSent)
		return
	}

	notif := AnalyticsNotification{
		Event: string(catalog.EventUELocThroughput),
		Infos: []ThroughputInfo{{
			SUPI:       st.supi,
			Throughput: formatThroughput(*st.prediction, s.cfg.ThroughputUnit),
		}},
	}

	if err := s.notifOut.Enqueue(ctx, st.subID, notif, messaging.OpReceive); err != nil {
		logger.L().ErrorContext(ctx, "failed to publish analytics notification", "sub_id", st.subID, "supi", st.supi, "error", err)
	}

	st.prediction = nil
	s.fire(ctx, st, TransitionAnalyticsNotifSent)
}

func (s *Service) fire(ctx context.Context, st *perSUPI, t Transition) {
	if err := st.machine.Fire(t); err != nil {
		logger.L().ErrorContext(ctx, "invalid transition", "sub_id", st.subID, "supi", st.supi, "state", st.machine.State(), "transition", t, "error", err)
	}
}

// formatThroughput renders v to two decimal places followed by unit, e.g.
// "12.34 Mbps".
func formatThroughput(v float64, unit Unit) string {
	return fmt.Sprintf("%.2f %s", v, unit)
}

// extractPrediction pulls the first float32 out of resp's "output"
// tensor. A missing or empty output yields 0, treated like any other
// prediction (the caller still clears pending state and advances).
func extractPrediction(resp *inference.PredictResponse) float64 {
	out, ok := resp.Outputs["output"]
	if !ok || len(out.Data) < 4 {
		return 0
	}
	return float64(bytesToFloat32(out.Data))
}
