// Package wshub broadcasts derived ticks to attached websocket clients.
// It is the distribution seam behind the streaming service: the core
// graph stays file-bound while dashboards can watch live.
package wshub

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Tick is one broadcast frame.
type Tick struct {
	Stream  string `json:"stream"`
	Payload any    `json:"payload"`
	TsMilli int64  `json:"ts"`
}

// Hub fans ticks out to every connected client. Slow clients are dropped
// rather than allowed to stall the broadcast.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
	closed  bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		clients: make(map[*websocket.Conn]chan []byte),
	}
}

// ServeHTTP upgrades a client connection and starts its writer.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("wshub: upgrade failed", slog.Any("error", err))
		return
	}

	send := make(chan []byte, 64)
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[conn] = send
	h.mu.Unlock()

	go h.writer(conn, send)
}

func (h *Hub) writer(conn *websocket.Conn, send chan []byte) {
	defer func() {
		h.drop(conn)
		conn.Close()
	}()
	for msg := range send {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Broadcast sends one tick to every attached client. Clients whose send
// buffer is full are dropped.
func (h *Hub) Broadcast(stream string, payload any) {
	msg, err := json.Marshal(Tick{
		Stream:  stream,
		Payload: payload,
		TsMilli: time.Now().UnixMilli(),
	})
	if err != nil {
		slog.Warn("wshub: marshal failed", slog.String("stream", stream), slog.Any("error", err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, send := range h.clients {
		select {
		case send <- msg:
		default:
			delete(h.clients, conn)
			close(send)
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if send, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(send)
	}
}

// Close detaches every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for conn, send := range h.clients {
		delete(h.clients, conn)
		close(send)
	}
}
