// Package realtime pushes table change events to subscribed websocket
// clients, replacing client-side polling for leads, clients, objectives and
// spaces.
package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// Event mirrors a row-level change. Type is one of INSERT, UPDATE, DELETE.
type Event struct {
	Table  string      `json:"table"`
	Type   string      `json:"type"`
	Record interface{} `json:"record"`
}

const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

type subscriber struct {
	conn   *websocket.Conn
	tables map[string]bool
	send   chan []byte
}

type Hub struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]bool
	upgrader    websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*subscriber]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWS upgrades the request and registers the connection. The tables
// query parameter filters which change events the client receives; absent
// means all tables.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Realtime] Upgrade failed: %v", err)
		return
	}

	sub := &subscriber{
		conn:   conn,
		tables: make(map[string]bool),
		send:   make(chan []byte, 16),
	}
	if raw := r.URL.Query().Get("tables"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				sub.tables[t] = true
			}
		}
	}

	h.mu.Lock()
	h.subscribers[sub] = true
	h.mu.Unlock()

	go h.writeLoop(sub)
	go h.readLoop(sub)
}

func (h *Hub) writeLoop(sub *subscriber) {
	for msg := range sub.send {
		if err := sub.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.drop(sub)
			return
		}
	}
}

// readLoop discards incoming frames; its only job is noticing the close.
func (h *Hub) readLoop(sub *subscriber) {
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			h.drop(sub)
			return
		}
	}
}

func (h *Hub) drop(sub *subscriber) {
	h.mu.Lock()
	if _, ok := h.subscribers[sub]; ok {
		delete(h.subscribers, sub)
		close(sub.send)
	}
	h.mu.Unlock()
	sub.conn.Close()
}

// Publish broadcasts a change event to every subscriber watching the table.
// Best effort: a client whose buffer is full is dropped rather than allowed
// to stall the mutation path.
func (h *Hub) Publish(table, eventType string, record interface{}) {
	payload, err := json.Marshal(Event{Table: table, Type: eventType, Record: record})
	if err != nil {
		log.Printf("[Realtime] Marshal failed for %s: %v", table, err)
		return
	}

	h.mu.RLock()
	var slow []*subscriber
	for sub := range h.subscribers {
		if len(sub.tables) > 0 && !sub.tables[table] {
			continue
		}
		select {
		case sub.send <- payload:
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range slow {
		h.drop(sub)
	}
}

// Close disconnects every subscriber. Used on shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	for sub := range h.subscribers {
		delete(h.subscribers, sub)
		close(sub.send)
		sub.conn.Close()
	}
	h.mu.Unlock()
}
