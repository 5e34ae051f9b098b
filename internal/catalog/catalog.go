// Package catalog derives the NWDAF topic namespace — the Cartesian
// product of direction, plane, NF type, and event type described in the
// data model — and the per-NF-type dispatch table ADRF uses to project a
// generic event-exposure notification onto its correlation field,
// timestamp, and record tag.
package catalog

import "strings"

// Direction is the leading topic segment: Control (subscription-side) or
// Data (delivery-side).
type Direction string

const (
	Control Direction = "Control"
	Data    Direction = "Data"
)

// Plane is the second topic segment, naming the subscription/delivery
// pattern carried on the topic.
type Plane string

const (
	PlaneNwdafEventSubscription        Plane = "NwdafEventSubscription"
	PlaneNwdafEventDelivery            Plane = "NwdafEventDelivery"
	PlaneEventExposureSubscription     Plane = "EventExposureSubscription"
	PlaneEventExposureDelivery         Plane = "EventExposureDelivery"
	PlaneMLModelProvisionSubscription  Plane = "MLModelProvisionSubscription"
	PlaneMLModelProvisionDelivery      Plane = "MLModelProvisionDelivery"
	PlaneDatasetCollectionSubscription Plane = "DatasetCollectionSubscription"
	PlaneDatasetRetrievalSubscription  Plane = "DatasetRetrievalSubscription"
	PlaneDatasetRetrievalDelivery      Plane = "DatasetRetrievalDelivery"
)

// NFType is a 5G network function that produces or consumes events.
type NFType string

const (
	NFGMLC  NFType = "GMLC"
	NFRAN   NFType = "RAN"
	NFAMF   NFType = "AMF"
	NFSMF   NFType = "SMF"
	NFUPF   NFType = "UPF"
	NFNEF   NFType = "NEF"
	NFAF    NFType = "AF"
	NFNRF   NFType = "NRF"
	NFNSACF NFType = "NSACF"
	NFUDM   NFType = "UDM"
)

// AllNFTypes lists every NF type in the catalog, in a stable order used
// wherever the full set must be enumerated (bootstrap, ADRF's all-NF
// subscription).
var AllNFTypes = []NFType{NFGMLC, NFRAN, NFAMF, NFSMF, NFUPF, NFNEF, NFAF, NFNRF, NFNSACF, NFUDM}

// EventType is an event enumeration specific to one NF type.
type EventType string

const (
	EventPeriodic       EventType = "PERIODIC"         // GMLC
	EventRSRPInfo       EventType = "RSRP_INFO"        // RAN
	EventUEMobility     EventType = "UE_MOBILITY"      // AMF, UPF
	EventPDUSession     EventType = "PDU_SESSION"      // SMF
	EventExposure       EventType = "EVENT_EXPOSURE"   // NEF
	EventAppInfluence   EventType = "APP_INFLUENCE"    // AF
	EventNFStatus       EventType = "NF_STATUS"        // NRF
	EventSliceLoad       EventType = "SLICE_LOAD"      // NSACF
	EventSubscriberData EventType = "SUBSCRIBER_DATA"  // UDM
	EventUELocThroughput EventType = "UE_LOC_THROUGHPUT"
)

// DefaultEventForNF is the representative event type exercised by the
// Cartesian-product topic catalog for each NF. GMLC, RAN, and AMF are
// fully wired into dispatch logic; the rest populate the namespace so
// bootstrap and the all-NF ADRF subscription are complete, per a generic
// projection (see DispatchByNF).
var DefaultEventForNF = map[NFType]EventType{
	NFGMLC:  EventPeriodic,
	NFRAN:   EventRSRPInfo,
	NFAMF:   EventUEMobility,
	NFSMF:   EventPDUSession,
	NFUPF:   EventUEMobility,
	NFNEF:   EventExposure,
	NFAF:    EventAppInfluence,
	NFNRF:   EventNFStatus,
	NFNSACF: EventSliceLoad,
	NFUDM:   EventSubscriberData,
}

// TopicFor joins direction, plane, and any remaining segments (NF type,
// event type) with '.'. The returned string must be preserved bit-for-bit
// across implementations per the external-interfaces contract.
func TopicFor(dir Direction, plane Plane, segments ...string) string {
	parts := make([]string, 0, 2+len(segments))
	parts = append(parts, string(dir), string(plane))
	parts = append(parts, segments...)
	return strings.Join(parts, ".")
}

// NwdafEventSubscriptionTopic is the gateway-facing control topic for a
// named analytics event (e.g. UE_LOC_THROUGHPUT).
func NwdafEventSubscriptionTopic(event EventType) string {
	return TopicFor(Control, PlaneNwdafEventSubscription, string(event))
}

// NwdafEventDeliveryTopic carries outbound analytics notifications for
// event.
func NwdafEventDeliveryTopic(event EventType) string {
	return TopicFor(Data, PlaneNwdafEventDelivery, string(event))
}

// EventExposureSubscriptionTopic is the control topic an analytics
// service uses to request notifications from nf for event.
func EventExposureSubscriptionTopic(nf NFType, event EventType) string {
	return TopicFor(Control, PlaneEventExposureSubscription, string(nf), string(event))
}

// EventExposureDeliveryTopic carries inbound notifications from nf for
// event.
func EventExposureDeliveryTopic(nf NFType, event EventType) string {
	return TopicFor(Data, PlaneEventExposureDelivery, string(nf), string(event))
}

// MLModelProvisionSubscriptionTopic requests a trained model for event.
func MLModelProvisionSubscriptionTopic(event EventType) string {
	return TopicFor(Control, PlaneMLModelProvisionSubscription, string(event))
}

// MLModelProvisionDeliveryTopic carries the model-location reply for
// event.
func MLModelProvisionDeliveryTopic(event EventType) string {
	return TopicFor(Data, PlaneMLModelProvisionDelivery, string(event))
}

// DatasetCollectionSubscriptionTopic is the single control topic ADRF
// watches to learn which datasets to start collecting.
func DatasetCollectionSubscriptionTopic() string {
	return TopicFor(Control, PlaneDatasetCollectionSubscription)
}

// DatasetRetrievalSubscriptionTopic is the single control topic ADRF
// watches for retrieval requests.
func DatasetRetrievalSubscriptionTopic() string {
	return TopicFor(Control, PlaneDatasetRetrievalSubscription)
}

// DatasetRetrievalDeliveryTopic is the single delivery topic ADRF
// publishes retrieved records on.
func DatasetRetrievalDeliveryTopic() string {
	return TopicFor(Data, PlaneDatasetRetrievalDelivery)
}

// AllTopics returns every topic the bootstrap initializer must ensure
// exists: the full NF×event Cartesian product for EventExposure
// subscription/delivery, plus every fixed control/delivery plane topic
// named in the external-interfaces contract.
func AllTopics() []string {
	var topics []string

	for _, nf := range AllNFTypes {
		event := DefaultEventForNF[nf]
		topics = append(topics,
			EventExposureSubscriptionTopic(nf, event),
			EventExposureDeliveryTopic(nf, event),
		)
	}

	topics = append(topics,
		NwdafEventSubscriptionTopic(EventUELocThroughput),
		NwdafEventDeliveryTopic(EventUELocThroughput),
		MLModelProvisionSubscriptionTopic(EventUELocThroughput),
		MLModelProvisionDeliveryTopic(EventUELocThroughput),
		DatasetCollectionSubscriptionTopic(),
		DatasetRetrievalSubscriptionTopic(),
		DatasetRetrievalDeliveryTopic(),
	)

	return topics
}

// NFProjection is the per-NF-type projection ADRF needs to turn a raw
// event-exposure notification into a correlation value, a timestamp, and
// a dataset record tag: the "closed tagged variant" the design notes ask
// for, expressed as a lookup table instead of a type-switch-per-call-site.
type NFProjection struct {
	// CorrelationField is the JSON field name in the notification payload
	// that carries the subscription/dataset correlation value.
	CorrelationField string

	// TimestampField is the top-level JSON field name of the payload
	// holding the sample timestamp. Fields nested inside a report list are
	// not looked up. Empty means no type-specific timestamp is known; ADRF
	// then stores the current time.
	TimestampField string

	// NotificationTag labels the record's type in ADRF storage.
	NotificationTag string
}

// DispatchByNF is the projection table. GMLC, RAN, and AMF carry the
// fully wired projections the throughput pipeline and ADRF scenarios
// exercise; the remaining NF types get a generic entry (correlation_id
// field, no type-specific timestamp) so the catalog's extension point is
// documented rather than left to silently panic on an unknown NF.
var DispatchByNF = map[NFType]NFProjection{
	NFGMLC: {CorrelationField: "ldr_reference", TimestampField: "time_stamp", NotificationTag: "GmlcEventNotification"},
	NFRAN:  {CorrelationField: "correlation_id", TimestampField: "", NotificationTag: "RanEventNotification"},
	NFAMF:  {CorrelationField: "correlation_id", TimestampField: "time_stamp", NotificationTag: "AmfEventNotification"},
}

// ProjectionFor returns the projection for nf, falling back to the
// generic correlation_id/no-timestamp projection for any NF type not
// given a fully wired entry above.
func ProjectionFor(nf NFType) NFProjection {
	if p, ok := DispatchByNF[nf]; ok {
		return p
	}
	return NFProjection{CorrelationField: "correlation_id", NotificationTag: string(nf) + "EventNotification"}
}
