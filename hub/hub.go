// Package hub pushes floor updates (reservations and tables) to connected
// host-stand screens over websockets.
package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// Event types
const (
	EventReservationCreated = "reservation_created"
	EventReservationUpdated = "reservation_updated"
	EventReservationStatus  = "reservation_status"
	EventTableCreated       = "table_created"
	EventTableSeated        = "table_seated"
	EventTableFinished      = "table_finished"
)

const (
	writeWait = 5 * time.Second
	// events queued per client before it is considered stalled
	sendBuffer = 32
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Publisher receives an event after a successful write.
type Publisher interface {
	Publish(event string, data interface{})
}

// Fanout forwards every event to each non-nil publisher.
type Fanout []Publisher

func (f Fanout) Publish(event string, data interface{}) {
	for _, p := range f {
		if p != nil {
			p.Publish(event, data)
		}
	}
}

// Hub keeps the set of connected floor clients. Each client has its own
// writer goroutine, so a slow socket never holds up Publish.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func New() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*client),
	}
}

// Register adds the connection and starts its writer.
func (h *Hub) Register(conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mutex.Lock()
	h.clients[conn] = c
	h.mutex.Unlock()

	go h.writePump(c)
}

// Unregister drops the connection; its writer closes it.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.remove(conn)
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Publish queues the event for every client. A client whose queue is full
// is dropped.
func (h *Hub) Publish(event string, data interface{}) {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		utils.ErrorLogger.Errorf("hub: marshal %s: %v", event, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	utils.InfoLogger.Debugf("hub: broadcasting %s to %d clients", event, len(h.clients))
	for conn, c := range h.clients {
		select {
		case c.send <- payload:
		default:
			utils.ErrorLogger.Warnf("hub: dropping stalled client %s", conn.RemoteAddr())
			h.remove(conn)
		}
	}
}

// remove must be called with the mutex held.
func (h *Hub) remove(conn *websocket.Conn) {
	if c, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(c.send)
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()

	for payload := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			utils.ErrorLogger.Warnf("hub: dropping client %s: %v", c.conn.RemoteAddr(), err)
			h.Unregister(c.conn)
			return
		}
	}
}
