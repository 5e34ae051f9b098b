// Package gmlc is a stub GMLC (location) network function: it accepts a
// location subscription and periodically posts back a jittered location
// sample to the requester's callback, purely to generate inputs for
// local end-to-end testing. It is not part of the control plane's
// functional scope.
package gmlc

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
)

// InputData is the subscription body posted to /ngmlc-loc/v1/provide-location.
type InputData struct {
	SUPI         string `json:"supi"`
	LdrReference string `json:"ldr_reference"`
	Periodic     struct {
		Interval int  `json:"interval"`
		Infinite bool `json:"infinite"`
	} `json:"periodic"`
	CurrentLocation bool   `json:"current_location"`
	CallbackURL     string `json:"callback_url"`
}

// Notification is the payload posted back to CallbackURL.
type Notification struct {
	LdrReference string  `json:"ldr_reference"`
	SUPI         string  `json:"supi"`
	Point        Point   `json:"point"`
	HSpeed       float64 `json:"h_speed"`
	Bearing      float64 `json:"bearing"`
}

// Point is a location sample.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type subscription struct {
	data InputData
	next time.Time
}

// Stub is the GMLC stub server.
type Stub struct {
	client *http.Client

	mu   sync.Mutex
	subs map[string]*subscription
}

// New creates a GMLC stub.
func New() *Stub {
	return &Stub{
		client: &http.Client{Timeout: 5 * time.Second},
		subs:   make(map[string]*subscription),
	}
}

// Register mounts the stub's routes onto e.
func (s *Stub) Register(e *echo.Echo) {
	e.POST("/ngmlc-loc/v1/provide-location", s.provideLocation)
}

func (s *Stub) provideLocation(c echo.Context) error {
	var in InputData
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed InputData")
	}

	s.mu.Lock()
	s.subs[in.LdrReference] = &subscription{data: in, next: time.Now()}
	s.mu.Unlock()

	return c.NoContent(http.StatusOK)
}

// Run drives the periodic notification loop until ctx is canceled.
func (s *Stub) Run(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
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
	var due []*subscription
	for _, sub := range s.subs {
		if !sub.next.After(now) {
			due = append(due, sub)
			interval := time.Duration(sub.data.Periodic.Interval) * time.Second
			if interval <= 0 {
				interval = 10 * time.Second
			}
			sub.next = now.Add(interval)
		}
	}
	s.mu.Unlock()

	for _, sub := range due {
		s.send(ctx, sub.data)
	}
}

func (s *Stub) send(ctx context.Context, in InputData) {
	if in.CallbackURL == "" {
		return
	}

	notif := Notification{
		LdrReference: in.LdrReference,
		SUPI:         in.SUPI,
		Point:        Point{Lat: 44.9 + rand.Float64()*0.2, Lon: -93.3 + rand.Float64()*0.2},
		HSpeed:       rand.Float64() * 20,
		Bearing:      rand.Float64() * 360,
	}

	body, err := json.Marshal(notif)
	if err != nil {
		logger.L().ErrorContext(ctx, "failed to marshal GMLC notification", "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, in.CallbackURL, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.L().WarnContext(ctx, "GMLC callback failed", "url", in.CallbackURL, "error", err)
		return
	}
	defer resp.Body.Close()
}
