// internal/websocket/hub.go
package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Feed event types pushed to connected clients.
const (
	EventPostCreated  = "post_created"
	EventLikeUpdated  = "like_updated"
	EventCommentAdded = "comment_added"
)

// FeedEvent is the envelope for everything broadcast over the feed socket.
type FeedEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub maintains the set of active clients and broadcasts feed events.
type Hub struct {
	// Registered clients. Maps farmer ID to a set of active connections.
	Clients map[uuid.UUID]map[*Client]bool

	// Outbound messages fanned out to every connection.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Clients:    make(map[uuid.UUID]map[*Client]bool),
	}
}

// Run starts the hub's processing loop.
func (h *Hub) Run() {
	log.Println("WebSocket Hub started.")
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.Clients[client.FarmerID]; !ok {
				h.Clients[client.FarmerID] = make(map[*Client]bool)
			}
			h.Clients[client.FarmerID][client] = true
			log.Printf("WebSocket client registered for farmer %s (%d connections)", client.FarmerID, len(h.Clients[client.FarmerID]))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if farmerClients, ok := h.Clients[client.FarmerID]; ok {
				if _, clientOk := farmerClients[client]; clientOk {
					delete(farmerClients, client)
					if len(farmerClients) == 0 {
						delete(h.Clients, client.FarmerID)
					}
					log.Printf("WebSocket client unregistered for farmer %s", client.FarmerID)
				}
			}
			h.mu.Unlock()

		case message := <-h.Broadcast:
			h.mu.RLock()
			for _, farmerClients := range h.Clients {
				for client := range farmerClients {
					select {
					case client.Send <- message:
					default:
						log.Printf("Broadcast send buffer full for client of farmer %s", client.FarmerID)
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastEvent marshals a feed event and fans it out to every connection.
// Called from HTTP handlers after a write succeeds.
func (h *Hub) BroadcastEvent(eventType string, payload interface{}) {
	data, err := json.Marshal(&FeedEvent{Type: eventType, Payload: payload})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", eventType, err)
		return
	}

	select {
	case h.Broadcast <- data:
	case <-time.After(1 * time.Second):
		log.Printf("Timeout queuing %s event, hub might be blocked", eventType)
	}
}
