// hub.go - Live viewer hub for the /ws channel
package api

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/lassejon/tempnode/internal/telemetry"
)

const (
	// Time allowed to write a message to a viewer
	writeWait = 10 * time.Second

	// Maximum message size allowed from a viewer; request frames are tiny
	maxMessageSize = 512
)

// viewer is one connected live-dashboard client. Writes are serialized per
// connection because broadcasts and request replies come from different
// goroutines.
type viewer struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (v *viewer) send(payload string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return v.conn.WriteMessage(websocket.TextMessage, []byte(payload))
}

// Hub owns the set of connected viewers. Membership changes only on
// connect/disconnect events; broadcast fan-out and request replies both go
// through the per-viewer send path.
type Hub struct {
	upgrader websocket.Upgrader
	latest   func() (telemetry.Reading, bool)

	mu      sync.Mutex
	viewers map[string]*viewer
}

// NewHub creates a Hub. latest supplies the reading taken at the most recent
// acquisition cycle.
func NewHub(latest func() (telemetry.Reading, bool)) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// The dashboard is served unauthenticated on the local network
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		latest:  latest,
		viewers: make(map[string]*viewer),
	}
}

// HandleWebSocket upgrades the HTTP connection and serves the live channel.
// Any text frame from the viewer is a request for the current reading and is
// answered with a single reply to that viewer only.
func (h *Hub) HandleWebSocket(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	ws.SetReadLimit(maxMessageSize)

	v := &viewer{id: uuid.New().String(), conn: ws}
	h.add(v)
	defer h.remove(v)

	fmt.Printf("[WebSocket] Viewer %s connected from %s\n", v.id, c.RealIP())

	for {
		msgType, _, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				fmt.Printf("[WebSocket] Viewer %s error: %v\n", v.id, err)
			}
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}

		// The frame content does not matter; any text frame asks for data.
		reading, ok := h.latest()
		if !ok {
			// No acquisition cycle has run yet; the next broadcast will
			// reach this viewer.
			continue
		}
		if err := v.send(reading.Payload()); err != nil {
			fmt.Printf("[WebSocket] Failed to reply to viewer %s: %v\n", v.id, err)
			break
		}
	}

	fmt.Printf("[WebSocket] Viewer %s disconnected\n", v.id)
	return nil
}

// BroadcastReading pushes the serialized reading to every connected viewer.
func (h *Hub) BroadcastReading(r telemetry.Reading) {
	payload := r.Payload()
	for _, v := range h.snapshot() {
		if err := v.send(payload); err != nil {
			fmt.Printf("[WebSocket] Failed to push to viewer %s: %v\n", v.id, err)
		}
	}
}

// ViewerCount returns the number of connected viewers.
func (h *Hub) ViewerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

func (h *Hub) add(v *viewer) {
	h.mu.Lock()
	h.viewers[v.id] = v
	h.mu.Unlock()
}

func (h *Hub) remove(v *viewer) {
	h.mu.Lock()
	delete(h.viewers, v.id)
	h.mu.Unlock()
}

func (h *Hub) snapshot() []*viewer {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*viewer, 0, len(h.viewers))
	for _, v := range h.viewers {
		out = append(out, v)
	}
	return out
}
