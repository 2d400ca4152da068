package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"

	"taskman/internal/models"
)

// Conn adalah bagian dari *websocket.Conn yang dipakai hub.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client merepresentasikan klien WebSocket.
type Client struct {
	Conn Conn
	Mu   sync.Mutex
}

// Event adalah payload yang dikirim ke semua klien setiap ada mutasi
// task: task_created, task_updated, atau task_deleted.
type Event struct {
	Event    string      `json:"event"`
	Position int         `json:"position,omitempty"`
	Task     models.Task `json:"task,omitempty"`
}

// Hub mengelola koneksi WebSocket.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

// NewHub membuat instance Hub baru.
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Publish meng-encode event mutasi task dan mem-broadcast-nya.
func (h *Hub) Publish(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	h.Broadcast <- payload
}

// Run menjalankan loop Hub untuk mengelola register, unregister, dan Broadcast.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				client.Conn.Close()
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				client.Mu.Lock()
				err := client.Conn.WriteMessage(websocket.TextMessage, message)
				client.Mu.Unlock()
				if err != nil {
					// Klien mati dilepas langsung di sini.
					// Mengirim ke Unregister dari dalam Run
					// akan deadlock: Run sendiri satu-satunya
					// penerima channel itu.
					delete(h.Clients, client)
					client.Conn.Close()
				}
			}
		}
	}
}
