package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub maintains the set of connected clients and fans circle events out
// to the members subscribed to each circle's feed.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Circle feeds (circleID -> subscribed clients)
	circles map[uint]map[*Client]bool

	// Mutex for circles map
	circlesMux sync.RWMutex

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client
}

// NewHub creates a new hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		circles:    make(map[uint]map[*Client]bool),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)

				// Remove client from all circle feeds
				h.circlesMux.Lock()
				for circleID, clients := range h.circles {
					if _, ok := clients[client]; ok {
						delete(h.circles[circleID], client)
						if len(h.circles[circleID]) == 0 {
							delete(h.circles, circleID)
						}
					}
				}
				h.circlesMux.Unlock()
			}
		}
	}
}

// joinCircle subscribes a client to a circle's feed
func (h *Hub) joinCircle(client *Client, circleID uint) {
	h.circlesMux.Lock()
	defer h.circlesMux.Unlock()

	if _, ok := h.circles[circleID]; !ok {
		h.circles[circleID] = make(map[*Client]bool)
	}
	h.circles[circleID][client] = true
}

// leaveCircle unsubscribes a client from a circle's feed
func (h *Hub) leaveCircle(client *Client, circleID uint) {
	h.circlesMux.Lock()
	defer h.circlesMux.Unlock()

	if _, ok := h.circles[circleID]; ok {
		delete(h.circles[circleID], client)
		if len(h.circles[circleID]) == 0 {
			delete(h.circles, circleID)
		}
	}
}

// broadcastToCircle sends an event to all clients subscribed to a circle
func (h *Hub) broadcastToCircle(circleID uint, message []byte) {
	h.circlesMux.RLock()
	defer h.circlesMux.RUnlock()

	if clients, ok := h.circles[circleID]; ok {
		for client := range clients {
			select {
			case client.send <- message:
			default:
				close(client.send)
				delete(clients, client)
				delete(h.clients, client)
			}
		}
	}
}

// BroadcastToCircle publishes an event on a circle's feed. Controllers
// call this after a ride or membership change commits; delivery is best
// effort and never awaited.
func BroadcastToCircle(circleID uint, eventType string, payload interface{}) {
	event := Event{
		Type:     eventType,
		CircleID: circleID,
		Payload:  payload,
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		log.Printf("error marshaling event: %v", err)
		return
	}

	hub.broadcastToCircle(circleID, eventBytes)
}

// Global hub instance
var hub *Hub

// InitHub initializes the global hub
func InitHub() {
	hub = NewHub()
	go hub.Run()
}
