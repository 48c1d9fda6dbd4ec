package notify

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is the wire envelope pushed to a connected client.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub maps a userId to its single live websocket connection. Connecting
// again replaces the previous connection (last-connection-wins); there is no
// multi-device fan-out. Emits are fire-and-forget, at-most-once.
type Hub struct {
	mu    sync.Mutex
	conns map[string]*websocket.Conn
	log   *zap.SugaredLogger
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		conns: make(map[string]*websocket.Conn),
		log:   log,
	}
}

// Connect registers conn for userID, closing any previous connection.
func (h *Hub) Connect(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	prev := h.conns[userID]
	h.conns[userID] = conn
	h.mu.Unlock()

	if prev != nil && prev != conn {
		_ = prev.Close()
	}
	h.log.Debugw("user connected", "userId", userID)
}

// Disconnect removes conn for userID. A stale conn (already replaced by a
// newer connection) is left alone.
func (h *Hub) Disconnect(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	if h.conns[userID] == conn {
		delete(h.conns, userID)
	}
	h.mu.Unlock()
	h.log.Debugw("user disconnected", "userId", userID)
}

// EmitToUser pushes an event to the user's connection if one exists.
// Emitting to a disconnected user is a silent no-op, and a write failure is
// logged, never surfaced.
func (h *Hub) EmitToUser(userID, event string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[userID]
	if !ok {
		return
	}
	if err := conn.WriteJSON(Event{Event: event, Data: payload}); err != nil {
		h.log.Warnw("failed to push event", "userId", userID, "event", event, "error", err)
		delete(h.conns, userID)
		_ = conn.Close()
	}
}

// Connected reports whether userID currently has a live connection.
func (h *Hub) Connected(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.conns[userID]
	return ok
}
