package hub

import (
	"encoding/json"
	"sync"
)

// Event represents a real-time event to be sent to clients, e.g. a new post
// in a circle. Events are emitted by handlers after the state change has been
// persisted, never from inside the domain core.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client represents a single client connection (a user watching a circle).
// It's essentially a channel that the SSE handler will listen to.
type Client chan []byte

// Hub manages all watched circles and their clients.
type Hub struct {
	circles map[uint]map[Client]bool
	mu      sync.RWMutex
}

// GlobalHub is the singleton instance of our Hub.
var GlobalHub = NewHub()

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		circles: make(map[uint]map[Client]bool),
	}
}

// Subscribe adds a new client to a specific circle.
func (h *Hub) Subscribe(circleID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.circles[circleID]; !ok {
		h.circles[circleID] = make(map[Client]bool)
	}
	h.circles[circleID][client] = true
}

// Unsubscribe removes a client from a circle.
func (h *Hub) Unsubscribe(circleID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.circles[circleID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // Close the channel to signal the SSE handler to stop.
			if len(clients) == 0 {
				delete(h.circles, circleID)
			}
		}
	}
}

// Broadcast sends an event to all clients watching a specific circle.
func (h *Hub) Broadcast(circleID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.circles[circleID]; ok {
		messageBytes, err := json.Marshal(event)
		if err != nil {
			return
		}

		for client := range clients {
			// Non-blocking send so one slow client cannot stall the rest.
			select {
			case client <- messageBytes:
			default:
			}
		}
	}
}
