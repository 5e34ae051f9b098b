// Package adrf implements the analytics data repository function: it
// archives event-exposure notifications into time-windowed datasets and
// serves windowed retrieval requests.
package adrf

import "github.com/chris-alexander-pop/system-design-library/internal/catalog"

// NFDataSub is an (empty, presence-only) marker: its slot being non-nil
// in an InnerSubscription is what selects which NF/event pair ADRF should
// re-subscribe to.
type NFDataSub struct{}

// InnerSubscription is the embedded event-exposure subscription carried
// by a dataset-collection request: exactly one NF-specific slot is
// populated, the closed tagged variant the design notes call for.
type InnerSubscription struct {
	DataSetID string `json:"data_set_id"`

	AmfDataSub   *NFDataSub `json:"amf_data_sub,omitempty"`
	SmfDataSub   *NFDataSub `json:"smf_data_sub,omitempty"`
	UpfDataSub   *NFDataSub `json:"upf_data_sub,omitempty"`
	NefDataSub   *NFDataSub `json:"nef_data_sub,omitempty"`
	AfDataSub    *NFDataSub `json:"af_data_sub,omitempty"`
	NrfDataSub   *NFDataSub `json:"nrf_data_sub,omitempty"`
	NsacfDataSub *NFDataSub `json:"nsacf_data_sub,omitempty"`
	UdmDataSub   *NFDataSub `json:"udm_data_sub,omitempty"`
	GmlcDataSub  *NFDataSub `json:"gmlc_data_sub,omitempty"`
	RanDataSub   *NFDataSub `json:"ran_data_sub,omitempty"`
}

// targetNFs returns every NF type whose slot is populated.
func (i InnerSubscription) targetNFs() []catalog.NFType {
	var out []catalog.NFType
	add := func(nf catalog.NFType, slot *NFDataSub) {
		if slot != nil {
			out = append(out, nf)
		}
	}
	add(catalog.NFAMF, i.AmfDataSub)
	add(catalog.NFSMF, i.SmfDataSub)
	add(catalog.NFUPF, i.UpfDataSub)
	add(catalog.NFNEF, i.NefDataSub)
	add(catalog.NFAF, i.AfDataSub)
	add(catalog.NFNRF, i.NrfDataSub)
	add(catalog.NFNSACF, i.NsacfDataSub)
	add(catalog.NFUDM, i.UdmDataSub)
	add(catalog.NFGMLC, i.GmlcDataSub)
	add(catalog.NFRAN, i.RanDataSub)
	return out
}

// TimePeriod bounds a retrieval scan, both ends Unix-seconds.
type TimePeriod struct {
	Start int64 `json:"start"`
	Stop  int64 `json:"stop"`
}

// RetrievalSubscription is the CREATE payload on
// Control.DatasetRetrievalSubscription.
type RetrievalSubscription struct {
	DataSetID   string     `json:"data_set_id"`
	NotifCorrID string     `json:"notif_corr_id"`
	TimePeriod  TimePeriod `json:"time_period"`
}

// RetrievalNotification is one emitted record on
// Data.DatasetRetrievalDelivery.
type RetrievalNotification struct {
	NotifCorrID    string                 `json:"notif_corr_id"`
	TypeTag        string                 `json:"type_tag"`
	Payload        map[string]interface{} `json:"payload"`
	Timestamp      int64                  `json:"timestamp"`
	TerminationReq bool                   `json:"termination_req"`
}
