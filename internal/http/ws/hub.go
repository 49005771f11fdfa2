package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/hockey-pool-service/internal/logging"
	"github.com/preston-bernstein/hockey-pool-service/internal/render"
)

// MessageTypeView tags a pushed render.View.
const MessageTypeView = "view"

// Message is the envelope written to every subscriber.
type Message struct {
	Type      string      `json:"type"`
	Payload   render.View `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub pushes every rendered view to connected websocket clients. New clients
// receive the latest view right after connecting.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader
	now      func() time.Time
	newID    func() string

	mu      sync.RWMutex
	clients map[*Client]struct{}
	latest  []byte
	closed  bool
}

// NewHub constructs a Hub. allowedOrigins empty or containing "*" accepts any origin.
func NewHub(logger *slog.Logger, allowedOrigins []string) *Hub {
	h := &Hub{
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
		clients: make(map[*Client]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

// Render encodes the view once and queues it for every client. Clients whose
// buffer is full are disconnected rather than blocking the refresh cycle.
func (h *Hub) Render(ctx context.Context, view render.View) error {
	_ = ctx
	msg, err := json.Marshal(Message{Type: MessageTypeView, Payload: view, Timestamp: h.now()})
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.latest = msg
	dropped := 0
	for c := range h.clients {
		if !c.trySend(msg) {
			h.removeLocked(c)
			dropped++
		}
	}
	if dropped > 0 {
		logging.Warn(h.logger, "dropped slow websocket clients", logging.FieldCount, dropped)
	}
	return nil
}

// ServeHTTP upgrades the request and registers the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(logging.FromContext(r.Context(), h.logger), "websocket upgrade failed", "error", err)
		return
	}

	c := newClient(h.newID(), conn, h)
	if !h.register(c) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	n := len(h.clients)
	for c := range h.clients {
		h.removeLocked(c)
	}
	logging.Info(h.logger, "websocket hub closed", logging.FieldCount, n)
}

func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.latest != nil {
		c.trySend(h.latest)
	}
	logging.Debug(h.logger, "websocket client connected", "client_id", c.ID, logging.FieldCount, len(h.clients))
	return true
}

func (h *Hub) unregisterClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		h.removeLocked(c)
		logging.Debug(h.logger, "websocket client disconnected", "client_id", c.ID, logging.FieldCount, len(h.clients))
	}
}

// removeLocked closes the client's send channel exactly once; callers hold mu.
func (h *Hub) removeLocked(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}
