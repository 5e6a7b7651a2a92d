package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/GhostOf0days/casino/internal/config"
	"github.com/GhostOf0days/casino/internal/game"
)

// SessionFactory opens the session for the index-th connection
type SessionFactory func(index int) (*game.Session, error)

// ConfigSessions returns a factory building sessions from cfg
func ConfigSessions(cfg *config.Config, logger *log.Logger) SessionFactory {
	return func(index int) (*game.Session, error) {
		opts, err := cfg.SessionOptions(logger, index)
		if err != nil {
			return nil, err
		}
		return game.NewSession(cfg.Session.InitialBalance, opts...), nil
	}
}

// Server hosts one game session per websocket connection
type Server struct {
	upgrader    websocket.Upgrader
	newSession  SessionFactory
	logger      *log.Logger
	startTime   time.Time
	mu          sync.Mutex
	connections map[*Connection]struct{}
	ctx         context.Context
	cancel      context.CancelFunc

	opened  atomic.Int64
	rounds  atomic.Int64
	wagered atomic.Int64
	net     atomic.Int64
}

// Stats is served on /stats
type Stats struct {
	Connections int    `json:"connections"`
	Sessions    int64  `json:"sessions"`
	Rounds      int64  `json:"rounds"`
	Wagered     int64  `json:"wagered"`
	PlayerNet   int64  `json:"playerNet"`
	Uptime      string `json:"uptime"`
}

// NewServer creates a websocket server
func NewServer(logger *log.Logger, newSession SessionFactory) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		newSession:  newSession,
		logger:      logger.WithPrefix("server"),
		startTime:   time.Now(),
		connections: make(map[*Connection]struct{}),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/stats", s.handleStats)
	r.Get("/ws", s.handleWebSocket)
	return r
}

// Serve listens on addr until ctx is cancelled
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting casino server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Stop()
		return err
	case <-ctx.Done():
	}

	s.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop closes every connection and its session
func (s *Server) Stop() {
	s.cancel()

	s.mu.Lock()
	conns := make([]*Connection, 0, len(s.connections))
	for c := range s.connections {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		_ = c.Close()
	}
}

// Stats returns the server counters
func (s *Server) Stats() Stats {
	s.mu.Lock()
	n := len(s.connections)
	s.mu.Unlock()

	return Stats{
		Connections: n,
		Sessions:    s.opened.Load(),
		Rounds:      s.rounds.Load(),
		Wagered:     s.wagered.Load(),
		PlayerNet:   s.net.Load(),
		Uptime:      time.Since(s.startTime).Round(time.Second).String(),
	}
}

// recordSettlement keeps the counters current for one session
func (s *Server) recordSettlement(e game.Event) {
	if ev, ok := e.(game.SettledEvent); ok {
		s.rounds.Add(1)
		s.wagered.Add(int64(ev.Outcome.Bet))
		s.net.Add(int64(ev.Settlement.Delta))
	}
}

// handleWebSocket upgrades the request and opens a session for it
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.ctx.Err() != nil {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}

	index := int(s.opened.Add(1)) - 1
	session, err := s.newSession(index)
	if err != nil {
		s.logger.Error("Failed to open session", "error", err)
		http.Error(w, "failed to open session", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		_ = session.Close()
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(s.ctx, conn, session, s.logger)
	unsubscribe := session.Subscribe(game.SubscriberFunc(s.recordSettlement))

	s.mu.Lock()
	s.connections[client] = struct{}{}
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "session", session.ID().String()[:8], "remote", r.RemoteAddr, "total", total)

	client.Start()

	go func() {
		<-client.Done()
		_ = client.Close()
		unsubscribe()

		s.mu.Lock()
		delete(s.connections, client)
		total := len(s.connections)
		s.mu.Unlock()
		s.logger.Info("Client disconnected", "session", session.ID().String()[:8], "total", total)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Stats()); err != nil {
		s.logger.Debug("Failed to write stats", "error", err)
	}
}
