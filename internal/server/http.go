package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/bborn/countdown/internal/config"
	"github.com/bborn/countdown/internal/countdown"
	"github.com/bborn/countdown/internal/links"
	"github.com/bborn/countdown/internal/presenter"
	"github.com/bborn/countdown/internal/ui"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// keepaliveInterval is how often idle SSE streams get a comment line.
const keepaliveInterval = 30 * time.Second

// HTTPServer serves the live countdown as JSON, SSE and WebSocket streams.
type HTTPServer struct {
	addr      string
	presenter *presenter.Presenter
	catalog   *links.Catalog
	prefs     *config.Preferences
	logger    *log.Logger
	srv       *http.Server
	hub       *WebSocketHub
	hubCancel context.CancelFunc

	mu          sync.RWMutex
	connections map[string]*sseConnection
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Addr      string // e.g. ":8080"
	Presenter *presenter.Presenter
	Release   *config.Release
	// Prefs backs /preferences; nil disables the endpoint.
	Prefs *config.Preferences
}

type sseConnection struct {
	id     string
	w      http.ResponseWriter
	flush  http.Flusher
	cancel context.CancelFunc
}

// CountdownResponse is the JSON form of one snapshot.
type CountdownResponse struct {
	presenter.Snapshot
	Released bool             `json:"released"`
	Display  string           `json:"display"`
	Slots    []countdown.Slot `json:"slots"`
}

// NewCountdownResponse wraps a snapshot for the wire.
func NewCountdownResponse(s presenter.Snapshot) CountdownResponse {
	return CountdownResponse{
		Snapshot: s,
		Released: s.Reached(),
		Display:  ui.PlainCountdown(s),
		Slots:    s.Slots(),
	}
}

// LinksResponse lists the platform buttons and link menus.
type LinksResponse struct {
	Title     string         `json:"title"`
	DateLabel string         `json:"date_label"`
	Platforms []links.Button `json:"platforms"`
	Menus     []links.Menu   `json:"menus"`
}

// NewHTTPServer creates a new HTTP server. The WebSocket hub starts
// immediately and runs until Shutdown.
func NewHTTPServer(cfg HTTPConfig) *HTTPServer {
	s := &HTTPServer{
		addr:        cfg.Addr,
		presenter:   cfg.Presenter,
		catalog:     links.NewCatalog(cfg.Release),
		prefs:       cfg.Prefs,
		logger:      log.NewWithOptions(os.Stderr, log.Options{Prefix: "http"}),
		connections: make(map[string]*sseConnection),
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.hub = NewWebSocketHub(cfg.Presenter, s.logger)
	s.hubCancel = cancel
	go s.hub.Run(ctx)

	s.srv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // Disable for SSE and WebSocket
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Handler returns the HTTP routes.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/countdown", s.handleCountdown)
	mux.HandleFunc("/countdown/stream", s.handleCountdownStream)
	mux.HandleFunc("/ws", s.hub.ServeHTTP)
	mux.HandleFunc("/links", s.handleLinks)
	mux.HandleFunc("/preferences", s.handlePreferences)
	return mux
}

// Start starts the HTTP server.
func (s *HTTPServer) Start() error {
	s.logger.Info("HTTP server starting", "addr", s.addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")

	s.mu.Lock()
	for _, conn := range s.connections {
		conn.cancel()
	}
	s.mu.Unlock()

	s.hubCancel()
	return s.srv.Shutdown(ctx)
}

// ActiveConnections returns the number of open SSE streams.
func (s *HTTPServer) ActiveConnections() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

// ActiveWebSockets returns the number of connected WebSocket clients.
func (s *HTTPServer) ActiveWebSockets() int {
	return s.hub.Clients()
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *HTTPServer) handleCountdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, NewCountdownResponse(s.presenter.Current()))
}

func (s *HTTPServer) handleLinks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	release := s.catalog.Release()
	writeJSON(w, http.StatusOK, LinksResponse{
		Title:     release.Title,
		DateLabel: release.DateLabel,
		Platforms: s.catalog.PlatformButtons(),
		Menus:     s.catalog.Menus(),
	})
}

func (s *HTTPServer) handlePreferences(w http.ResponseWriter, r *http.Request) {
	if s.prefs == nil {
		http.Error(w, "preferences unavailable", http.StatusServiceUnavailable)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.prefs.All())
	case http.MethodPut, http.MethodPatch:
		var body map[string]bool
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		for key := range body {
			if _, err := config.Default(key); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		for key, value := range body {
			if err := s.prefs.Set(key, value); err != nil {
				s.logger.Error("failed to save preference", "key", key, "error", err)
				http.Error(w, "failed to save preference", http.StatusInternalServerError)
				return
			}
		}
		writeJSON(w, http.StatusOK, s.prefs.All())
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleCountdownStream streams one "tick" event per snapshot.
func (s *HTTPServer) handleCountdownStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn := &sseConnection{
		id:     uuid.NewString(),
		w:      w,
		flush:  flusher,
		cancel: cancel,
	}

	s.mu.Lock()
	s.connections[conn.id] = conn
	s.mu.Unlock()
	defer s.removeConnection(conn.id)

	updates := s.presenter.Subscribe()
	defer s.presenter.Unsubscribe(updates)

	s.logger.Info("SSE client connected", "id", conn.id, "remote", r.RemoteAddr)

	// Send initial connection event and the current state
	s.sendEvent(conn, "connected", map[string]string{"id": conn.id})
	s.sendEvent(conn, "tick", NewCountdownResponse(s.presenter.Current()))

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("SSE client disconnected", "id", conn.id)
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := s.sendEvent(conn, "tick", NewCountdownResponse(snap)); err != nil {
				s.logger.Debug("SSE write failed", "id", conn.id, "error", err)
				return
			}
		case <-keepalive.C:
			if _, err := fmt.Fprintf(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (s *HTTPServer) sendEvent(conn *sseConnection, eventType string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("Failed to marshal event", "error", err)
		return err
	}

	if _, err := fmt.Fprintf(conn.w, "event: %s\ndata: %s\n\n", eventType, jsonData); err != nil {
		return err
	}
	conn.flush.Flush()
	return nil
}

func (s *HTTPServer) removeConnection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.connections, id)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
