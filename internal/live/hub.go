// Package live pushes dashboard statistics to subscribed WebSocket clients,
// replacing the old poll-every-five-minutes refresh with a server-side
// poller plus a push after every acknowledged mutation.
package live

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub maintains the set of subscribed clients and broadcasts stats frames.
type Hub struct {
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	// last holds the most recent frame so a new subscriber gets the
	// current stats immediately.
	mu   sync.RWMutex
	last []byte
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 8),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			last := h.last
			h.mu.Unlock()
			if last != nil {
				select {
				case client.send <- last:
				default:
				}
			}
			log.Printf("📡 Dashboard subscriber connected: %s", client.id)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			h.last = message
			for id, client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Buffer full or client dead
					delete(h.clients, id)
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends a stats payload to every subscriber.
func (h *Hub) Broadcast(payload interface{}) {
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling stats frame: %v", err)
		return
	}
	h.broadcast <- msg
}
