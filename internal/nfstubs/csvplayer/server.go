package csvplayer

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
)

// Server exposes the player over HTTP: GET /start triggers a single
// replay run of Config.FilePath, forwarding rows to Endpoints.
type Server struct {
	cfg       Config
	endpoints []string

	mu      sync.Mutex
	started bool
}

// NewServer creates a Server for the given config and target endpoints.
func NewServer(cfg Config, endpoints []string) *Server {
	return &Server{cfg: cfg, endpoints: endpoints}
}

// Register mounts GET /start onto e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/start", s.start)
}

func (s *Server) start(c echo.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return c.JSON(http.StatusOK, map[string]string{"message": "already started"})
	}
	s.started = true
	s.mu.Unlock()

	player := New(s.cfg)
	forwarder := NewForwarder(s.endpoints)

	ctx := context.Background()
	go func() {
		_ = player.Run(ctx)
	}()
	go forwarder.Run(ctx, player.Rows())

	return c.JSON(http.StatusOK, map[string]string{"message": "started sending CSV data"})
}
