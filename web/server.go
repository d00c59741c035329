// Package web serves a local dashboard with prompt, history, and stats
// views, pushing live paste events over a WebSocket.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mjenior/pasteprompt/prompts"
	"github.com/mjenior/pasteprompt/storage"
)

//go:embed static/*
var staticFiles embed.FS

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local-only server
	},
}

// PromptSource returns the current prompt collection; the tray app swaps the
// collection on reload, so the server reads through a callback.
type PromptSource func() map[string]prompts.Prompt

// Server is the local dashboard server.
type Server struct {
	db      *storage.DB
	source  PromptSource
	port    int
	hub     *Hub
	started time.Time

	mu      sync.Mutex
	httpSrv *http.Server
	addr    string
}

// NewServer creates a dashboard server over the history store.
func NewServer(db *storage.DB, source PromptSource, port int) *Server {
	hub := NewHub()
	go hub.Run()

	return &Server{
		db:      db,
		source:  source,
		port:    port,
		hub:     hub,
		started: time.Now(),
	}
}

// Start serves the dashboard. Blocking until Stop; a clean shutdown
// returns nil.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/prompts", s.handlePrompts)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/history/", s.handleHistory)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/ws", s.handleWebSocket)

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to load static files: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(staticFS)))

	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.mu.Lock()
	s.httpSrv = &http.Server{Handler: mux}
	s.addr = ln.Addr().String()
	s.mu.Unlock()

	slog.Info("Starting dashboard", "url", fmt.Sprintf("http://%s", s.Addr()))

	if err := s.httpSrv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the bound listen address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Stop gracefully shuts the server down, unblocking Start.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpSrv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// BroadcastPaste pushes a recorded delivery to all connected clients.
func (s *Server) BroadcastPaste(p *storage.Paste) {
	s.hub.BroadcastMessage(Message{
		Type: MessageTypePaste,
		Data: PasteMessage{
			ID:        p.ID,
			PromptKey: p.PromptKey,
			Source:    p.Source,
			Success:   p.Success,
			Timestamp: p.Timestamp.Format(time.RFC3339),
		},
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade WebSocket connection", "error", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
