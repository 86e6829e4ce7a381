// Package server exposes the dashboard over HTTP and pushes every refresh to
// websocket subscribers.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/alexanderramin/firstdynamics/internal/app"
	"github.com/alexanderramin/firstdynamics/internal/middleware"
)

type Server struct {
	router    *mux.Router
	hub       *Hub
	refresher *Refresher
	upgrader  websocket.Upgrader
	logger    *log.Logger
}

type Options struct {
	RefreshInterval time.Duration
	DemoOnError     bool
	// AllowedOrigins are origin prefixes that may open /ws. Requests without
	// an Origin header are always accepted.
	AllowedOrigins []string
}

func New(dashboard app.DashboardUseCase, opts Options, logger *log.Logger) *Server {
	hub := NewHub(logger.With("module", "hub"))
	s := &Server{
		router:    mux.NewRouter(),
		hub:       hub,
		refresher: NewRefresher(dashboard, opts.RefreshInterval, opts.DemoOnError, hub, logger.With("module", "refresher")),
		upgrader:  websocket.Upgrader{CheckOrigin: middleware.OriginChecker(opts.AllowedOrigins)},
		logger:    logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Logging(s.logger))

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	api.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)

	s.router.HandleFunc("/ws", s.handleWebSocket)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the hub and the refresh loop until ctx is done.
func (s *Server) Start(ctx context.Context) {
	go s.hub.Run(ctx)
	go s.refresher.Run(ctx)
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.Start(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("dashboard server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady is ready once a cycle has produced live data.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	view, ok := s.refresher.Latest()
	switch {
	case !ok:
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
	case !view.Live:
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "degraded", "error": view.Error})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"status": "ready", "lastUpdated": view.LastUpdated})
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view, ok := s.refresher.Latest()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no refresh has completed yet"})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	view, ok := s.refresher.Refresh(r.Context())
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "refresh cancelled"})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	// New subscribers get the current view straight away.
	if view, ok := s.refresher.Latest(); ok {
		if msg, err := json.Marshal(updateMessage{Type: "dashboard", Data: view}); err == nil {
			client.send <- msg
		}
	}

	if !s.hub.Register(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
