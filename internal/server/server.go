// Package server provides the development server: it serves the generated
// docs site and pushes live-reload notifications to connected browsers over
// a websocket channel.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/rafters-ui/rafters/internal/logging"
)

// Server serves the built site directory with a /ws live-reload endpoint.
type Server struct {
	addr   string
	root   string
	logger logging.Logger

	mu      sync.Mutex
	clients map[chan string]bool
}

// New creates a development server for the given site root.
func New(host string, port int, root string, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Server{
		addr:    fmt.Sprintf("%s:%d", host, port),
		root:    root,
		logger:  logger,
		clients: make(map[chan string]bool),
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string { return s.addr }

// Serve runs the HTTP server until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.Handle("/", http.FileServer(http.Dir(s.root)))

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "development server listening", "addr", s.addr, "root", s.root)

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Broadcast notifies every connected client. Used by the watcher after a
// rebuild.
func (s *Server) Broadcast(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for client := range s.clients {
		select {
		case client <- message:
		default:
			// slow client; it will catch up on the next change
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warn(r.Context(), err, "websocket accept failed")
		return
	}
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "") }()

	messages := make(chan string, 8)
	s.mu.Lock()
	s.clients[messages] = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, messages)
		s.mu.Unlock()
	}()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case message := <-messages:
			if err := conn.Write(ctx, websocket.MessageText, []byte(message)); err != nil {
				return
			}
		}
	}
}
