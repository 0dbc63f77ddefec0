// Package debugws exposes a websocket tap streaming per-event engine
// decisions to debug clients. The tap is observational only: a slow or dead
// client is dropped rather than ever back-pressuring the engine.
package debugws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/okian/flick/pkg/logger"
	"github.com/okian/flick/pkg/metrics"
)

// Default hub configuration constants.
const (
	clientBuffer = 64
	writeTimeout = 5 * time.Second
)

// Hub fans engine decisions out to connected websocket clients.
type Hub struct {
	upgrader websocket.Upgrader
	lg       logger.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Option applies a configuration option to the Hub.
type Option func(*Hub)

// WithLogger sets a custom logger for the hub.
func WithLogger(lg logger.Logger) Option {
	return func(h *Hub) {
		if lg != nil {
			h.lg = lg
		}
	}
}

// NewHub creates a Hub.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			// The tap runs on the local metrics listener; origin
			// checks add nothing there.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the tap on the given mux.
func (h *Hub) Register(mux *http.ServeMux) {
	mux.HandleFunc("/debug/events", h.handle)
}

// Broadcast sends one decision to every connected client, dropping clients
// whose buffers are full.
func (h *Hub) Broadcast(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- b:
		default:
			h.dropLocked(c)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.lg != nil {
			h.lg.Warn(r.Context(), "websocket upgrade failed", logger.Error(err))
		}
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	metrics.UpdateDebugClients(len(h.clients))
	h.mu.Unlock()

	go h.writeLoop(c)

	// Reads are discarded; the loop exists to notice the peer closing.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	h.dropLocked(c)
	h.mu.Unlock()
}

func (h *Hub) writeLoop(c *client) {
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// dropLocked removes a client. Callers hold h.mu.
func (h *Hub) dropLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	c.conn.Close()
	metrics.UpdateDebugClients(len(h.clients))
}
