package csvplayer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "rows-*.csv")
	require.NoError(t, err)
	_, err = f.WriteString("latitude,longitude,movingSpeed,compassDirection,lte_rsrp,nr_ssRsrp\n" +
		"44.975,-93.261,5.0,90,-90,-100.0\n" +
		"44.976,,6.5,,,\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func TestPlayerEmitsConvertedRows(t *testing.T) {
	player := New(Config{FilePath: writeTempCSV(t), Interval: 5 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- player.Run(ctx) }()

	var rows []Row
	for row := range player.Rows() {
		rows = append(rows, row)
	}
	require.NoError(t, <-done)

	require.Len(t, rows, 2)
	require.InDelta(t, 44.975, *rows[0].Latitude, 0.0001)
	require.Equal(t, -90, *rows[0].LteRsrp)
	require.Nil(t, rows[1].CompassDirection)
}

func TestForwarderPostsRowsToAllEndpoints(t *testing.T) {
	rows := make(chan Row, 1)
	rows <- Row{MovingSpeed: floatPtr(3.2)}
	close(rows)

	var hitsA, hitsB int32
	serverA := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			atomic.AddInt32(&hitsA, 1)
		}
	}))
	defer serverA.Close()
	serverB := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			atomic.AddInt32(&hitsB, 1)
		}
	}))
	defer serverB.Close()

	forwarder := NewForwarder([]string{serverA.URL, serverB.URL})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	forwarder.Run(ctx, rows)

	require.Equal(t, int32(1), atomic.LoadInt32(&hitsA))
	require.Equal(t, int32(1), atomic.LoadInt32(&hitsB))
}

func floatPtr(v float64) *float64 { return &v }
