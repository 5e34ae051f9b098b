// Package throughput implements the throughput AnLF: fan-in of GMLC
// (location) and RAN (radio-signal) notifications per subscribed SUPI,
// ML prediction, and outbound UE_LOC_THROUGHPUT analytics notifications.
package throughput

// AnalyticsSubscriptionRequest is the payload on
// Control.NwdafEventSubscription.<event>: a gateway-originated request for
// a recurring analytic, keyed by sub_id.
type AnalyticsSubscriptionRequest struct {
	Event           string   `json:"event"`
	SUPIs           []string `json:"supis"`
	NotificationURI string   `json:"notification_uri"`
}

// GMLCPeriodic requests periodic location reporting.
type GMLCPeriodic struct {
	Interval int  `json:"interval"`
	Infinite bool `json:"infinite"`
}

// GMLCSubscriptionRequest is the InputData payload published on
// Control.EventExposureSubscription.GMLC.PERIODIC.
type GMLCSubscriptionRequest struct {
	SUPI            string       `json:"supi"`
	LdrReference    string       `json:"ldr_reference"`
	Periodic        GMLCPeriodic `json:"periodic"`
	CurrentLocation bool         `json:"current_location"`
}

// GMLCPoint is a location sample.
type GMLCPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GMLCNotification is the inbound payload on
// Data.EventExposureDelivery.GMLC.PERIODIC.
type GMLCNotification struct {
	LdrReference string    `json:"ldr_reference"`
	SUPI         string    `json:"supi"`
	Point        GMLCPoint `json:"point"`
	HSpeed       float64   `json:"h_speed"`
	Bearing      float64   `json:"bearing"`
}

// RANSubscriptionRequest is the RanEventSubscription payload published on
// Control.EventExposureSubscription.RAN.RSRP_INFO.
type RANSubscriptionRequest struct {
	CorrelationID string   `json:"correlation_id"`
	UEIDs         []string `json:"ue_ids"`
	Periodicity   int      `json:"periodicity"`
}

// RANNotification is the inbound payload on
// Data.EventExposureDelivery.RAN.RSRP_INFO.
type RANNotification struct {
	CorrelationID string  `json:"correlation_id"`
	UEID          string  `json:"ue_id"`
	LteRSRP       float64 `json:"lte_rsrp"`
	NrSSRSRP      float64 `json:"nr_ss_rsrp"`
}

// ThroughputInfo is one SUPI's predicted throughput, formatted per the
// service's configured unit (see Config.ThroughputUnit).
type ThroughputInfo struct {
	SUPI       string `json:"supi"`
	Throughput string `json:"throughput"`
}

// AnalyticsNotification is the outbound payload on
// Data.NwdafEventDelivery.UE_LOC_THROUGHPUT.
type AnalyticsNotification struct {
	Event string           `json:"event"`
	Infos []ThroughputInfo `json:"infos"`
}

// MLModelRequest is the (empty-bodied beyond the event tag) CREATE
// payload on Control.MLModelProvisionSubscription.<event>.
type MLModelRequest struct {
	Event string `json:"event"`
}

// MLModelDelivery is the reply on
// Data.MLModelProvisionDelivery.<event>.
type MLModelDelivery struct {
	Event      string `json:"event"`
	MLModelURL string `json:"m_l_model_url"`
}
