package status

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"hollowbot/pkg/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = 18791
)

// Server exposes /healthz and /readyz for process supervision.
type Server struct {
	cfg config.StatusConfig
	log *slog.Logger

	mu             sync.RWMutex
	startedAt      time.Time
	channelName    string
	channelRunning bool
	mutedCount     int
}

type response struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Channel       string `json:"channel,omitempty"`
	ChannelUp     bool   `json:"channel_up"`
	MutedCount    int    `json:"muted_count"`
}

// NewServer prepares a status server; Run starts it.
func NewServer(cfg config.StatusConfig, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	return &Server{
		cfg: cfg,
		log: log.With("component", "status.server"),
	}
}

// SetChannel records the transport the bot is serving.
func (s *Server) SetChannel(name string, running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channelName = name
	s.channelRunning = running
}

// SetMutedCount mirrors the moderation store size into status output.
func (s *Server) SetMutedCount(count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mutedCount = count
}

// Run serves until ctx is done. Errors other than graceful shutdown are
// returned; callers usually run this in its own goroutine.
func (s *Server) Run(ctx context.Context) error {
	s.mu.Lock()
	s.startedAt = time.Now().UTC()
	s.mu.Unlock()

	host := strings.TrimSpace(s.cfg.Host)
	if host == "" {
		host = defaultHost
	}
	port := s.cfg.Port
	if port <= 0 {
		port = defaultPort
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	server := &http.Server{
		Addr:              host + ":" + strconv.Itoa(port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.log.Info("Status server started", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, "ok")
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	statusCode := http.StatusOK
	status := "ready"
	if !s.isReady() {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	s.respond(w, statusCode, status)
}

func (s *Server) respond(w http.ResponseWriter, statusCode int, status string) {
	s.mu.RLock()
	uptime := int64(0)
	if !s.startedAt.IsZero() {
		uptime = int64(time.Since(s.startedAt).Seconds())
	}
	payload := response{
		Status:        status,
		UptimeSeconds: uptime,
		Channel:       s.channelName,
		ChannelUp:     s.channelRunning,
		MutedCount:    s.mutedCount,
	}
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("Failed to write status response", "error", err)
	}
}

func (s *Server) isReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.channelRunning
}
