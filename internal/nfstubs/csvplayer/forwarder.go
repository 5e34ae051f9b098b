package csvplayer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
)

// dataPayload is the body posted to each endpoint's /data handler.
type dataPayload struct {
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	MovingSpeed      *float64 `json:"movingSpeed,omitempty"`
	CompassDirection *int     `json:"compassDirection,omitempty"`
	LteRsrp          *int     `json:"lte_rsrp,omitempty"`
	NrSSRsrp         *float64 `json:"nr_ssRsrp,omitempty"`
}

// Forwarder is the single consumer of a Player's row channel: it posts
// each row to every configured endpoint before pulling the next one.
type Forwarder struct {
	client    *http.Client
	endpoints []string
}

// NewForwarder creates a Forwarder posting to the given endpoint URLs.
func NewForwarder(endpoints []string) *Forwarder {
	return &Forwarder{
		client:    &http.Client{Timeout: 5 * time.Second},
		endpoints: endpoints,
	}
}

// Run drains rows until the channel closes or ctx is canceled.
func (f *Forwarder) Run(ctx context.Context, rows <-chan Row) {
	for {
		select {
		case <-ctx.Done():
			return
		case row, ok := <-rows:
			if !ok {
				return
			}
			f.send(ctx, row)
		}
	}
}

func (f *Forwarder) send(ctx context.Context, row Row) {
	payload := dataPayload{
		Latitude:         row.Latitude,
		Longitude:        row.Longitude,
		MovingSpeed:      row.MovingSpeed,
		CompassDirection: row.CompassDirection,
		LteRsrp:          row.LteRsrp,
		NrSSRsrp:         row.NrSSRsrp,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logger.L().ErrorContext(ctx, "failed to marshal CSV row", "error", err)
		return
	}

	for _, endpoint := range f.endpoints {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := f.client.Do(req)
		if err != nil {
			logger.L().WarnContext(ctx, "failed to forward CSV row", "endpoint", endpoint, "error", err)
			continue
		}
		resp.Body.Close()
	}
}
