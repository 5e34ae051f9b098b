// Package ran is a stub RAN (radio access network) network function: it
// accepts an RSRP subscription and periodically posts back RSRP samples
// to the requester's callback, for local end-to-end testing.
package ran

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/google/uuid"
)

// SubscriptionRequest is the body posted to /ran-event-exposure/v1/subscriptions.
type SubscriptionRequest struct {
	UEIDs          []string `json:"ue_ids"`
	Periodicity    int      `json:"periodicity"`
	CorrelationID  string   `json:"correlation_id"`
	CallbackURL    string   `json:"callback_url"`
}

// RsrpInfo is one UE's RSRP sample.
type RsrpInfo struct {
	UEID    string   `json:"ue_id"`
	NrSSRsrp float64 `json:"nr_ss_rsrp"`
	LteRsrp int      `json:"lte_rsrp"`
}

// Notification is the payload posted back to the subscriber's CallbackURL.
type Notification struct {
	Event         string     `json:"event"`
	TimeStamp     time.Time  `json:"time_stamp"`
	CorrelationID string     `json:"correlation_id"`
	RsrpInfos     []RsrpInfo `json:"rsrp_infos"`
}

// Override is an operator-injected sample fed through POST /data; when
// set it replaces the randomly generated RSRP values on the next
// notification cycle, the same override semantics the original player
// feeds to this stub via its "next_data" slot.
type Override struct {
	LteRsrp  *int     `json:"lte_rsrp"`
	NrSSRsrp *float64 `json:"nr_ssRsrp"`
}

type subscription struct {
	req  SubscriptionRequest
	next time.Time
}

// Stub is the RAN stub server.
type Stub struct {
	client *http.Client

	mu       sync.Mutex
	subs     map[string]*subscription
	override *Override
}

// New creates a RAN stub.
func New() *Stub {
	return &Stub{
		client: &http.Client{Timeout: 5 * time.Second},
		subs:   make(map[string]*subscription),
	}
}

// Register mounts the stub's routes onto e.
func (s *Stub) Register(e *echo.Echo) {
	e.POST("/ran-event-exposure/v1/subscriptions", s.subscribe)
	e.POST("/data", s.receiveData)
}

func (s *Stub) subscribe(c echo.Context) error {
	var req SubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed subscription request")
	}

	subID := uuid.New().String()
	interval := time.Duration(req.Periodicity) * time.Second
	if interval <= 0 {
		interval = 1 * time.Second
	}

	s.mu.Lock()
	s.subs[subID] = &subscription{req: req, next: time.Now().Add(interval)}
	s.mu.Unlock()

	c.Response().Header().Set(echo.HeaderLocation, "/ran-event-exposure/v1/subscriptions/"+subID)
	return c.JSON(http.StatusCreated, req)
}

func (s *Stub) receiveData(c echo.Context) error {
	var ov Override
	if err := c.Bind(&ov); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed data")
	}

	s.mu.Lock()
	s.override = &ov
	s.mu.Unlock()

	return c.JSON(http.StatusOK, map[string]string{"message": "data received"})
}

// Run drives the periodic notification loop until ctx is canceled.
func (s *Stub) Run(ctx context.Context) {
	ticker := time.NewTicker(300 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.notifyDue(ctx, now)
		}
	}
}

func (s *Stub) notifyDue(ctx context.Context, now time.Time) {
	s.mu.Lock()
	var due []struct {
		subID string
		req   SubscriptionRequest
	}
	for subID, sub := range s.subs {
		if !sub.next.After(now) {
			due = append(due, struct {
				subID string
				req   SubscriptionRequest
			}{subID, sub.req})
			interval := time.Duration(sub.req.Periodicity) * time.Second
			if interval <= 0 {
				interval = 1 * time.Second
			}
			sub.next = now.Add(interval)
		}
	}
	override := s.override
	s.mu.Unlock()

	for _, d := range due {
		s.send(ctx, d.subID, d.req, override)
	}
}

func (s *Stub) send(ctx context.Context, subID string, req SubscriptionRequest, override *Override) {
	if req.CallbackURL == "" {
		return
	}

	infos := make([]RsrpInfo, 0, len(req.UEIDs))
	for _, ue := range req.UEIDs {
		lte := -140 + rand.Intn(97)
		nrSS := -139.0 + rand.Float64()*71.0
		if override != nil {
			if override.LteRsrp != nil {
				lte = *override.LteRsrp
			}
			if override.NrSSRsrp != nil {
				nrSS = *override.NrSSRsrp
			}
		}
		infos = append(infos, RsrpInfo{UEID: ue, LteRsrp: lte, NrSSRsrp: nrSS})
	}

	notif := Notification{
		Event:         "RSRP_INFO",
		TimeStamp:     time.Now(),
		CorrelationID: subID,
		RsrpInfos:     infos,
	}

	body, err := json.Marshal(notif)
	if err != nil {
		logger.L().ErrorContext(ctx, "failed to marshal RAN notification", "error", err)
		return
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, req.CallbackURL, bytes.NewReader(body))
	if err != nil {
		return
	}
	r.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(r)
	if err != nil {
		logger.L().WarnContext(ctx, "RAN callback failed", "url", req.CallbackURL, "error", err)
		return
	}
	defer resp.Body.Close()
}
