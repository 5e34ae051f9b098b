// Package csvplayer replays a recorded drive-test CSV file, one row at a
// time, by POSTing each row to the configured /data endpoints (of the two
// NF stubs, only the RAN stub serves /data).
//
// The original player kept the "most recently read row" in a single
// shared global, overwritten by a background task and read back by
// whichever request handler happened to run next — harmless there
// because it only ever ran one file at a time, but the wrong shape for
// this replay of it: rows are pushed through a single-producer,
// single-consumer channel instead, so the row a consumer sees is always
// the one the producer most recently read, not a stale one left behind
// by a previous run that is still draining.
package csvplayer

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/chris-alexander-pop/system-design-library/pkg/logger"
)

// Row is one parsed CSV record, field-converted the way the original
// player converts them before forwarding.
type Row struct {
	Latitude          *float64
	Longitude         *float64
	MovingSpeed       *float64
	CompassDirection  *int
	LteRsrp           *int
	NrSSRsrp          *float64
}

// Config configures the player.
type Config struct {
	FilePath string
	Interval time.Duration
}

// Player reads FilePath and emits one Row onto its output channel per
// Interval, until the file is exhausted or ctx is canceled.
type Player struct {
	cfg Config
	out chan Row
}

// New creates a Player. Rows() must be drained by exactly one consumer.
func New(cfg Config) *Player {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	return &Player{cfg: cfg, out: make(chan Row)}
}

// Rows returns the channel rows are published on.
func (p *Player) Rows() <-chan Row {
	return p.out
}

// Run opens the CSV file and streams its rows, closing the output
// channel when done. It is the single producer for that channel; Run
// must not be called more than once concurrently on the same Player.
func (p *Player) Run(ctx context.Context) error {
	defer close(p.out)

	f, err := os.Open(p.cfg.FilePath)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return err
	}

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			logger.L().WarnContext(ctx, "failed to read CSV row", "error", err)
			continue
		}

		row := convertRow(header, record)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case p.out <- row:
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func convertRow(header, record []string) Row {
	fields := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(record) {
			fields[name] = record[i]
		}
	}

	var row Row
	row.Latitude = parseFloat(fields["latitude"])
	row.Longitude = parseFloat(fields["longitude"])
	row.MovingSpeed = parseFloat(fields["movingSpeed"])
	row.CompassDirection = parseInt(fields["compassDirection"])
	row.LteRsrp = parseInt(fields["lte_rsrp"])
	row.NrSSRsrp = parseFloat(fields["nr_ssRsrp"])
	return row
}

func parseFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(raw string) *int {
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
